package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const PlotTitle = "Ocean Temperature Anomalies Relative to the Baseline"

// LineAnomalies generates an echart line chart of the historical anomalies followed by the
// forecast, with the forecast drawn dashed and a mark line at the zero baseline.
func LineAnomalies(doc *Document) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: PlotTitle,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Year",
				Type: "value",
				Min:  "dataMin",
				Max:  "dataMax",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Temperature Anomaly",
			},
		),
	)

	lineDataHistorical := make([]opts.LineData, 0, len(doc.Historical))
	for _, p := range doc.Historical {
		lineDataHistorical = append(lineDataHistorical, opts.LineData{Value: []float64{p.Year, p.Value}})
	}

	lineDataForecast := make([]opts.LineData, 0, len(doc.Forecast))
	for _, p := range doc.Forecast {
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: []float64{p.Year, p.Value}})
	}

	line.AddSeries("Historical Anomalies", lineDataHistorical).
		AddSeries(
			"Forecasted Anomalies",
			lineDataForecast,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
			charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{
					Name:  fmt.Sprintf("Baseline (%s)", doc.Baseline),
					YAxis: 0,
				},
			),
		)
	return line
}

// Plot renders the anomaly chart as an HTML page
func Plot(w io.Writer, doc *Document) error {
	page := components.NewPage()
	page.AddCharts(LineAnomalies(doc))
	return page.Render(w)
}
