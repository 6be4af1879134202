package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	testData := map[string]struct {
		x        []float64
		y        []float64
		expected *Dataset
		err      error
	}{
		"no training data": {
			err: ErrNoTrainingData,
		},
		"no values": {
			x:   []float64{1950},
			err: ErrNoTrainingData,
		},
		"length mismatch": {
			x:   []float64{1950, 1951},
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"valid": {
			x: []float64{1950, 1951},
			y: []float64{-0.1, 0.0},
			expected: &Dataset{
				X: []float64{1950, 1951},
				Y: []float64{-0.1, 0.0},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.x, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, ds)
		})
	}
}

func TestNewUnivariateDatasetCopiesInput(t *testing.T) {
	x := []float64{1950, 1951}
	y := []float64{1, 2}
	ds, err := NewUnivariateDataset(x, y)
	require.Nil(t, err)

	x[0] = 0
	y[0] = 0
	assert.Equal(t, []float64{1950, 1951}, ds.X)
	assert.Equal(t, []float64{1, 2}, ds.Y)
}

func TestCopy(t *testing.T) {
	ds, err := NewUnivariateDataset([]float64{1950, 1951}, []float64{0, 1})
	require.Nil(t, err)

	dsCopy := ds.Copy()
	assert.Equal(t, ds, dsCopy)

	dsCopy.Y[0] = 10
	assert.Equal(t, 0.0, ds.Y[0])
}

func TestLen(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())

	ds, err := NewUnivariateDataset([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.Nil(t, err)
	assert.Equal(t, 3, ds.Len())
}

func TestSummary(t *testing.T) {
	ds, err := NewUnivariateDataset(
		[]float64{1952, 1950, 1951},
		[]float64{0.5, -0.25, 1.25},
	)
	require.Nil(t, err)

	s, err := ds.Summary()
	require.Nil(t, err)
	assert.Equal(t, Summary{
		Count:       3,
		FirstYear:   1950,
		LastYear:    1952,
		MinAnomaly:  -0.25,
		MaxAnomaly:  1.25,
		MeanAnomaly: 0.5,
	}, s)

	_, err = (&Dataset{}).Summary()
	assert.ErrorIs(t, err, ErrNoTrainingData)
}
