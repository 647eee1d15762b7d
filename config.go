package longshort

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters of a simulation run.
type Config struct {
	Capital      float64        `yaml:"capital"`   // starting portfolio value
	Currency     string         `yaml:"currency"`  // ISO 4217 code of the book
	Cost         float64        `yaml:"cost"`      // transaction cost fraction per trade
	SizeFraction float64        `yaml:"size"`      // fraction of value per new position
	RiskFree     float64        `yaml:"risk_free"` // annual risk free rate for ratios
	Strategy     StrategyConfig `yaml:"strategy"`
}

// StrategyConfig selects and parameterizes the signal generator.
type StrategyConfig struct {
	Name       string  `yaml:"name"`       // fundamental, ema or sma
	Percentile float64 `yaml:"percentile"` // fundamental: percentile of the universe per side
	Short      int     `yaml:"short"`      // crossovers: short window in days
	Long       int     `yaml:"long"`       // crossovers: long window in days
}

// DefaultConfig returns the parameters a run uses when no file overrides
// them.
func DefaultConfig() Config {
	return Config{
		Capital:      1_000_000,
		Currency:     "USD",
		Cost:         0.001,
		SizeFraction: 0.02,
		Strategy: StrategyConfig{
			Name:       "fundamental",
			Percentile: 10,
			Short:      5,
			Long:       20,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the engine parameters. Strategy parameters are checked by
// the strategy constructors.
func (c Config) Validate() error {
	if c.Capital <= 0 {
		return fmt.Errorf("capital must be positive, got %g", c.Capital)
	}
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if c.Cost < 0 || c.Cost >= 1 {
		return fmt.Errorf("cost must be in [0,1), got %g", c.Cost)
	}
	if c.SizeFraction <= 0 || c.SizeFraction > 1 {
		return fmt.Errorf("size must be in (0,1], got %g", c.SizeFraction)
	}
	return nil
}
