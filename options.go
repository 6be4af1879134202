package forecaster

import (
	"github.com/aouyang1/go-trendcast/forecast"
	"github.com/aouyang1/go-trendcast/linearmodel"
	"github.com/aouyang1/go-trendcast/render"
)

// Options configures the forecast horizon, the descriptive baseline label, and the
// regression.
type Options struct {
	Range      forecast.Range          `json:"range"`
	Baseline   string                  `json:"baseline"`
	OLSOptions *linearmodel.OLSOptions `json:"ols_options"`
}

// NewDefaultOptions forecasts 2024 through 2124 against the 1951-1980 baseline
func NewDefaultOptions() *Options {
	return &Options{
		Range:      forecast.NewDefaultRange(),
		Baseline:   render.DefaultBaseline,
		OLSOptions: linearmodel.NewDefaultOLSOptions(),
	}
}

// Validate returns a copy of the options with defaults filled in, rejecting an inverted or
// oversized forecast range. The receiver is left untouched.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	out := *o

	olsOpt, err := out.OLSOptions.Validate()
	if err != nil {
		return nil, err
	}
	out.OLSOptions = olsOpt

	if err := out.Range.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
