package forecaster

import "github.com/aouyang1/go-trendcast/linearmodel"

// Model is a serializable representation of a fit forecaster
type Model struct {
	Options *Options         `json:"options"`
	Line    linearmodel.Line `json:"line"`
	Samples int              `json:"training_samples"`
}
