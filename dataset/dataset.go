// Package dataset holds the historical (year, anomaly) samples a trend is fit against
package dataset

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-trendcast/stats"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrDatasetLenMismatch = errors.New("year series has a different length than observations")
)

// Dataset represents parallel year and value series. Index i of X corresponds to index i of Y
// and both must be of the same non-zero length.
type Dataset struct {
	X []float64 `json:"years"`
	Y []float64 `json:"anomalies"`
}

// NewUnivariateDataset returns an instance of a Dataset given a year and value slice. The
// inputs are copied.
func NewUnivariateDataset(x, y []float64) (*Dataset, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"year series has length of %d, but values has a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}

	xSeries := make([]float64, len(x))
	ySeries := make([]float64, len(y))
	copy(xSeries, x)
	copy(ySeries, y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}, nil
}

// Copy returns a deep copy of the dataset
func (d *Dataset) Copy() *Dataset {
	xSeries := make([]float64, len(d.X))
	ySeries := make([]float64, len(d.Y))
	copy(xSeries, d.X)
	copy(ySeries, d.Y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}
}

// Len returns the number of samples
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.X)
}

// Summary describes the span and spread of a dataset
type Summary struct {
	Count       int     `json:"count"`
	FirstYear   float64 `json:"first_year"`
	LastYear    float64 `json:"last_year"`
	MinAnomaly  float64 `json:"min_anomaly"`
	MaxAnomaly  float64 `json:"max_anomaly"`
	MeanAnomaly float64 `json:"mean_anomaly"`
}

// Summary computes the dataset summary. First and last year are the smallest and largest
// years present, not the first and last rows.
func (d *Dataset) Summary() (Summary, error) {
	if d.Len() == 0 {
		return Summary{}, ErrNoTrainingData
	}
	return Summary{
		Count:       d.Len(),
		FirstYear:   floats.Min(d.X),
		LastYear:    floats.Max(d.X),
		MinAnomaly:  floats.Min(d.Y),
		MaxAnomaly:  floats.Max(d.Y),
		MeanAnomaly: stats.Mean(d.Y),
	}, nil
}
