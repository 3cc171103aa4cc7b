// Package model provides the binary classifiers scored in fairness experiments.
package model

import (
	"io"

	"github.com/hscells/parity/dataset"
)

// Classifier is an abstract representation of a binary classification model
// that can perform a training and a scoring task. Additionally, a model must
// implement how its learned parameters are output for later reuse.
type Classifier interface {
	// Train must fit the model to a dataset, honouring instance weights.
	Train(d dataset.Dataset) error
	// PredictProba must produce a probability of the favourable outcome for each row.
	PredictProba(x [][]float64) ([]float64, error)
	// Output must output a learned model to a file.
	Output(w io.Writer) error
}

// Predict thresholds probability scores into hard classes.
func Predict(scores []float64, threshold float64) []int {
	classes := make([]int, len(scores))
	for i, s := range scores {
		if s >= threshold {
			classes[i] = 1
		}
	}
	return classes
}
