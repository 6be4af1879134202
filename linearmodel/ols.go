// Package linearmodel fits a single predictor least squares line used to extrapolate a trend
package linearmodel

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-trendcast/stats"
)

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// WarnDegenerate logs a warning when the predictor has zero variance and the
	// zero line fallback is returned
	WarnDegenerate bool `json:"warn_degenerate"`
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}

	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		WarnDegenerate: true,
	}
}

// Line is the fitted y = Slope*x + Intercept. Degenerate is set when the predictor had
// zero variance, in which case Slope and Intercept are both zero.
type Line struct {
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// Predict evaluates the line at x
func (l Line) Predict(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// String returns the line represented as y ~ b + m*x
func (l Line) String() string {
	return fmt.Sprintf("y ~ %.6g%+.6g*x", l.Intercept, l.Slope)
}

// Fit computes the ordinary least squares line of y given x. Both sums are accumulated in
// index order:
//
//	num = sum((x[i]-xMean)*(y[i]-yMean))
//	den = sum((x[i]-xMean)^2)
//
// If den is exactly zero the slope is undefined and a zero Line marked Degenerate is
// returned with a nil error.
func Fit(x, y []float64, opt *OLSOptions) (Line, error) {
	opt, err := opt.Validate()
	if err != nil {
		return Line{}, err
	}
	if len(x) == 0 {
		return Line{}, ErrNoTrainingArray
	}
	if len(y) == 0 {
		return Line{}, ErrNoTargetArray
	}
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("training data has %d rows and target has %d rows, %w", len(x), len(y), ErrTargetLenMismatch)
	}

	xMean := stats.Mean(x)
	yMean := stats.Mean(y)

	var num, den float64
	for i := 0; i < len(x); i++ {
		dx := x[i] - xMean
		num += dx * (y[i] - yMean)
		den += dx * dx
	}

	if den == 0 {
		if opt.WarnDegenerate {
			slog.Warn("predictor has zero variance, falling back to zero slope and intercept",
				"samples", len(x), "x_mean", xMean)
		}
		return Line{Degenerate: true}, nil
	}

	slope := num / den
	return Line{
		Slope:     slope,
		Intercept: yMean - slope*xMean,
	}, nil
}

// IsFinite reports whether both coefficients are finite numbers
func (l Line) IsFinite() bool {
	return !math.IsNaN(l.Slope) && !math.IsInf(l.Slope, 0) &&
		!math.IsNaN(l.Intercept) && !math.IsInf(l.Intercept, 0)
}
