// Package longshort provides the simulation engine for backtesting
// long/short equity strategies over historical closing prices. It is
// designed to be deterministic and auditable, every trade the engine
// attempts is recorded and every figure it reports can be recomputed from
// the persisted run.
//
// The core functionalities include:
//   - Ledger Management: An exact-decimal book of cash, long and short
//     positions, driven by four trade primitives that charge a
//     proportional cost on every fill.
//   - Backtesting: A calendar walk over the quote history that retargets
//     the book on every month change from a strategy's signals and
//     compounds a value weighted daily return.
//   - Performance Measurement: Annualized return, volatility, Sharpe,
//     Sortino, drawdown and Calmar over the daily return series, plus a
//     market factor regression and signal accuracy scoring.
//   - Data Persistence: Importing quote and market histories from CSV and
//     JSONL, and round-tripping whole runs through a line-oriented JSONL
//     result format.
//
// This package serves as the foundational logic for the `lsb` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package longshort
