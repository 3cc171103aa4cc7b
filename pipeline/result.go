// Package pipeline provides the types that flow through a parity experiment.
package pipeline

import (
	"github.com/hscells/parity/stats"
)

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Measurement is a value about the dataset (e.g. base rate difference).
	Measurement ResultType = iota
	// Evaluation is an evaluation result.
	Evaluation
	// Prediction is the scored test set of one scenario.
	Prediction
	// Plot is the path of an exported plot specification.
	Plot
	// Error indicates an error was raised.
	Error
	// Done indicates the pipeline has completed.
	Done
)

// Result is the output of a parity pipeline.
type Result struct {
	Scenario     string
	Measurements []string
	Evaluations  []string
	Predictions  *stats.Predictions
	Plot         string
	Type         ResultType
	Error        error
}
