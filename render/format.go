// Package render writes historical samples and forecasts as CSV text sections, JSON, or an
// HTML chart
package render

import (
	"strconv"

	"github.com/aouyang1/go-trendcast/dataset"
	"github.com/aouyang1/go-trendcast/forecast"
	"github.com/aouyang1/go-trendcast/linearmodel"
)

const (
	DefaultPrecision = 6
	DefaultBaseline  = "1951-1980"

	HeaderHistorical = "Year,Anomaly"
	HeaderForecast   = "Year,Forecasted Anomaly"
)

// Format controls numeric to text conversion. Precision is the number of significant digits
// in %g style; -1 prints the shortest representation that round trips.
type Format struct {
	Precision int `json:"precision"`
}

// NewDefaultFormat returns six significant digits
func NewDefaultFormat() *Format {
	return &Format{
		Precision: DefaultPrecision,
	}
}

// Validate returns a copy of the format with defaults filled in and the precision clamped.
// The receiver is left untouched.
func (f *Format) Validate() (*Format, error) {
	if f == nil {
		return NewDefaultFormat(), nil
	}
	out := *f
	if out.Precision < -1 {
		out.Precision = -1
	}
	return &out, nil
}

// Float formats v with the configured precision
func (f *Format) Float(v float64) string {
	return strconv.FormatFloat(v, 'g', f.Precision, 64)
}

// Point is a single year, value pair
type Point struct {
	Year  float64 `json:"year"`
	Value float64 `json:"value"`
}

// Document is the full result of a run
type Document struct {
	Baseline   string                  `json:"baseline"`
	Line       linearmodel.Line        `json:"line"`
	Summary    dataset.Summary         `json:"summary"`
	Historical []Point                 `json:"historical"`
	Forecast   []Point                 `json:"forecast"`
	Skipped    []dataset.SkippedRecord `json:"skipped,omitempty"`
}

// NewDocument assembles a Document from the training data and forecast results
func NewDocument(
	baseline string,
	line linearmodel.Line,
	hist *dataset.Dataset,
	res *forecast.Results,
	skipped []dataset.SkippedRecord,
) (*Document, error) {
	summary, err := hist.Summary()
	if err != nil {
		return nil, err
	}

	historical := make([]Point, 0, hist.Len())
	for i := 0; i < hist.Len(); i++ {
		historical = append(historical, Point{Year: hist.X[i], Value: hist.Y[i]})
	}

	doc := NewForecastDocument(baseline, line, res)
	doc.Summary = summary
	doc.Historical = historical
	doc.Skipped = skipped
	return doc, nil
}

// NewForecastDocument assembles a Document holding only a forecast, as produced from a saved
// model with no training data
func NewForecastDocument(baseline string, line linearmodel.Line, res *forecast.Results) *Document {
	predicted := make([]Point, 0, res.Len())
	for i := 0; i < res.Len(); i++ {
		predicted = append(predicted, Point{Year: float64(res.Years[i]), Value: res.Forecast[i]})
	}
	return &Document{
		Baseline: baseline,
		Line:     line,
		Forecast: predicted,
	}
}
