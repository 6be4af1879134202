// Package forecast extrapolates a fitted trend line over an inclusive range of integer years
package forecast

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-trendcast/linearmodel"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultStartYear = 2024
	DefaultEndYear   = 2124

	// MaxRangeLen caps the number of years a single forecast may cover
	MaxRangeLen = 100000
)

var (
	ErrInvalidRange  = errors.New("forecast start year is after end year")
	ErrRangeTooLarge = errors.New("forecast range covers too many years")
)

// Range is an inclusive interval of integer evaluation years
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewDefaultRange returns the 2024 through 2124 forecast horizon
func NewDefaultRange() Range {
	return Range{
		Start: DefaultStartYear,
		End:   DefaultEndYear,
	}
}

// NewRange returns a validated range
func NewRange(start, end int) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate rejects a range whose start is after its end or that spans more than MaxRangeLen
// years
func (r Range) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("start %d, end %d, %w", r.Start, r.End, ErrInvalidRange)
	}
	if r.span() >= MaxRangeLen {
		return fmt.Errorf("start %d, end %d, max %d years, %w", r.Start, r.End, MaxRangeLen, ErrRangeTooLarge)
	}
	return nil
}

// span is End - Start without signed overflow. Requires Start <= End.
func (r Range) span() uint64 {
	return uint64(r.End) - uint64(r.Start)
}

// Len returns the number of years covered by the range, or 0 for an invalid range
func (r Range) Len() int {
	if r.Validate() != nil {
		return 0
	}
	return int(r.span()) + 1
}

// Years returns every year in the range in ascending order. An invalid range yields no years.
func (r Range) Years() []float64 {
	n := r.Len()
	years := make([]float64, n)
	switch n {
	case 0:
	case 1:
		years[0] = float64(r.Start)
	default:
		floats.Span(years, float64(r.Start), float64(r.End))
	}
	return years
}

// Results holds one predicted value per forecast year
type Results struct {
	Years    []int     `json:"years"`
	Forecast []float64 `json:"forecast"`
}

// Len returns the number of forecast points
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Years)
}

// Forecast evaluates line at every year of r. Values are plain linear extrapolation
// without clamping.
func Forecast(line linearmodel.Line, r Range) (*Results, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	x := r.Years()
	pred := make([]float64, len(x))
	floats.ScaleTo(pred, line.Slope, x)
	floats.AddConst(line.Intercept, pred)

	years := make([]int, len(x))
	for i := range years {
		years[i] = r.Start + i
	}

	return &Results{
		Years:    years,
		Forecast: pred,
	}, nil
}
