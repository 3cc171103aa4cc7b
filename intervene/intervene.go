// Package intervene provides fairness interventions applied before training,
// during training, and after scoring.
package intervene

import (
	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/model"
	"github.com/hscells/parity/stats"
)

// Preprocessor is a transformation made to a dataset before a model is
// trained on it.
type Preprocessor interface {
	// Name is the name of the intervention in the output. It should not contain any spaces.
	Name() string
	// Apply transforms a copy of the dataset, leaving the original untouched.
	Apply(d dataset.Dataset) (dataset.Dataset, error)
}

// PostProcessor is a transformation made to predictions after a model has
// scored a dataset.
type PostProcessor interface {
	Name() string
	Apply(p stats.Predictions) (stats.Predictions, error)
}

// PrejudiceRemover is the in-processing intervention: a classifier trained
// with a group-covariance fairness penalty of strength eta.
func PrejudiceRemover(eta, lr float64, epochs int, l2 float64, seed int64) model.Classifier {
	return model.NewPrejudiceRemover(eta, lr, epochs, l2, seed)
}
