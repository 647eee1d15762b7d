package renderer

import (
	"errors"

	"github.com/etnz/longshort/date"
	"github.com/vicanso/go-charts/v2"
)

// ReturnChart renders the cumulative growth of the daily return series as a
// PNG line chart. A stake of 1 compounds through every recorded return.
func ReturnChart(returns *date.History[float64]) ([]byte, error) {
	labels := make([]string, 0, returns.Len())
	values := make([]float64, 0, returns.Len())
	cum := 1.0
	for on, r := range returns.Values() {
		cum *= 1 + r
		labels = append(labels, on.String())
		values = append(values, (cum-1)*100)
	}
	return lineChart("Cumulative Return (%)", labels, values)
}

// DrawdownChart renders the distance from the running peak as a PNG line
// chart, 0 at new highs and negative under water.
func DrawdownChart(returns *date.History[float64]) ([]byte, error) {
	labels := make([]string, 0, returns.Len())
	values := make([]float64, 0, returns.Len())
	cum, peak := 1.0, 1.0
	for on, r := range returns.Values() {
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		labels = append(labels, on.String())
		values = append(values, (cum-peak)/peak*100)
	}
	return lineChart("Drawdown (%)", labels, values)
}

func lineChart(title string, labels []string, values []float64) ([]byte, error) {
	if len(values) < 2 {
		return nil, errors.New("not enough data points")
	}
	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
