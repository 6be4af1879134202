package forecaster

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aouyang1/go-trendcast/dataset"
	"github.com/aouyang1/go-trendcast/forecast"
	"github.com/aouyang1/go-trendcast/linearmodel"
	"github.com/aouyang1/go-trendcast/render"
)

var (
	ErrEmptyDataset     = errors.New("no dataset or uninitialized")
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrInvalidModelLine = errors.New("model line has non-finite coefficients")
	ErrUntrained        = errors.New("forecaster has not been fit yet")
)

// Forecaster fits a linear trend to historical samples and extrapolates it over the
// configured forecast range
type Forecaster struct {
	opt *Options

	line    linearmodel.Line
	trained bool

	fitTrainingData *dataset.Dataset
	samples         int
}

// New creates a new instance of a Forecaster using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize forecaster, %w", err)
	}
	return &Forecaster{opt: opt}, nil
}

// NewFromModel creates a new instance of Forecaster from a pre-existing model. This should be
// generated from a previous forecaster call to Model().
func NewFromModel(model Model) (*Forecaster, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to load model options, %w", err)
	}
	if !model.Line.IsFinite() {
		return nil, ErrInvalidModelLine
	}

	slog.Debug("loaded forecaster model", "line", model.Line.String(), "training_samples", model.Samples)
	return &Forecaster{
		opt:     opt,
		line:    model.Line,
		trained: true,
		samples: model.Samples,
	}, nil
}

// Fit uses the input year and value series and fits the trend line
func (f *Forecaster) Fit(x, y []float64) error {
	td, err := dataset.NewUnivariateDataset(x, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}
	return f.FitDataset(td)
}

// FitDataset fits the trend line against a dataset
func (f *Forecaster) FitDataset(td *dataset.Dataset) error {
	if td.Len() == 0 {
		return ErrEmptyDataset
	}

	line, err := linearmodel.Fit(td.X, td.Y, f.opt.OLSOptions)
	if err != nil {
		return fmt.Errorf("unable to fit trend line, %w", err)
	}

	f.fitTrainingData = td.Copy()
	f.samples = td.Len()
	f.line = line
	f.trained = true
	return nil
}

// Line returns the fitted trend line
func (f *Forecaster) Line() linearmodel.Line {
	return f.line
}

// Degenerate reports whether the fit fell back to the zero line
func (f *Forecaster) Degenerate() bool {
	return f.line.Degenerate
}

// Predict evaluates the trend line at each x
func (f *Forecaster) Predict(x []float64) ([]float64, error) {
	if !f.trained {
		return nil, ErrUntrained
	}
	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = f.line.Predict(v)
	}
	return res, nil
}

// Forecast evaluates the trend line over every year of the configured range
func (f *Forecaster) Forecast() (*forecast.Results, error) {
	if !f.trained {
		return nil, ErrUntrained
	}
	res, err := forecast.Forecast(f.line, f.opt.Range)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast, %w", err)
	}
	return res, nil
}

// Options returns the options the forecaster was configured with
func (f *Forecaster) Options() *Options {
	return f.opt
}

// Model generates a serializeable representation of the options and fit line. This can be
// used to initialize a new Forecaster for immediate forecasts skipping the training step.
func (f *Forecaster) Model() (Model, error) {
	if !f.trained {
		return Model{}, ErrUntrained
	}
	return Model{
		Options: f.opt,
		Line:    f.line,
		Samples: f.samples,
	}, nil
}

// ModelEq returns a string representation of the fit line represented as y ~ b+m*x
func (f *Forecaster) ModelEq() (string, error) {
	if !f.trained {
		return "", ErrUntrained
	}
	return f.line.String(), nil
}

// TrainingData returns the training data used to fit the current forecaster model. It is nil
// for a forecaster loaded from a model.
func (f *Forecaster) TrainingData() *dataset.Dataset {
	return f.fitTrainingData
}

// Document assembles the training data, fit line, and forecast for rendering
func (f *Forecaster) Document(skipped []dataset.SkippedRecord) (*render.Document, error) {
	if f.fitTrainingData == nil {
		return nil, ErrEmptyDataset
	}
	res, err := f.Forecast()
	if err != nil {
		return nil, err
	}
	return render.NewDocument(f.opt.Baseline, f.line, f.fitTrainingData, res, skipped)
}

// PlotFit uses the Apache Echarts library to generate an html file showing the historical
// samples and the forecast
func (f *Forecaster) PlotFit(path string) error {
	doc, err := f.Document(nil)
	if err != nil {
		return fmt.Errorf("unable to build plot data, %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return render.Plot(file, doc)
}
