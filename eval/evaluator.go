// Package eval provides accuracy and group-fairness measures for evaluating
// classifier predictions.
package eval

import (
	"github.com/hscells/parity/stats"
)

// Evaluator is an interface for evaluating a set of classifier predictions.
type Evaluator interface {
	Score(p stats.Predictions) float64
	Name() string
}

// Evaluate scores predictions using supplied evaluation measures.
func Evaluate(evaluators []Evaluator, p stats.Predictions) map[string]float64 {
	scores := map[string]float64{}
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(p)
	}
	return scores
}
