package pipeline

import (
	"github.com/hscells/parity/intervene"
	"github.com/hscells/parity/model"
)

// Scenario is one experimental condition: a classifier together with the
// interventions applied around it. A typical experiment runs a baseline
// scenario next to one scenario per intervention and compares the resulting
// metrics.
type Scenario struct {
	Name        string
	Model       model.Classifier
	Preprocess  []intervene.Preprocessor
	PostProcess []intervene.PostProcessor
	// Threshold overrides the pipeline classification threshold when non-zero.
	Threshold float64
}

// Baseline is the scenario with no intervention at all.
func Baseline(m model.Classifier) Scenario {
	return Scenario{Name: "baseline", Model: m}
}
