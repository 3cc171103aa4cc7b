// Package dataset provides sources for loading tabular fairness datasets in different formats.
package dataset

import (
	"github.com/pkg/errors"
)

// Dataset is an in-memory tabular dataset for binary classification with a single
// binary protected attribute. Rows are individuals. A dataset is loaded once and
// treated as read-only; interventions that modify data operate on a copy.
type Dataset struct {
	Name         string
	FeatureNames []string
	X            [][]float64
	// Protected contains group membership for each row; 1 is the privileged group.
	Protected []int
	// Labels contains the class for each row; 1 is the favourable outcome.
	Labels []int
	// Weights contains per-instance weights. A freshly loaded dataset weights
	// every instance at 1.
	Weights []float64
}

// Source represents a source for datasets and how to load them.
type Source interface {
	// Load determines how a dataset is read and parsed into the in-memory representation.
	Load(path string) (Dataset, error)
}

// New creates a dataset from pre-parsed columns with unit instance weights.
func New(name string, featureNames []string, x [][]float64, protected, labels []int) Dataset {
	w := make([]float64, len(x))
	for i := range w {
		w[i] = 1
	}
	return Dataset{
		Name:         name,
		FeatureNames: featureNames,
		X:            x,
		Protected:    protected,
		Labels:       labels,
		Weights:      w,
	}
}

// Len is the number of rows in the dataset.
func (d Dataset) Len() int {
	return len(d.X)
}

// Validate ensures the dataset invariants hold: all vectors have the same
// length and the protected attribute and label are strictly binary.
func (d Dataset) Validate() error {
	if len(d.Protected) != len(d.X) || len(d.Labels) != len(d.X) || len(d.Weights) != len(d.X) {
		return errors.New("the length of the feature matrix, protected attribute, labels, and weights must be the same")
	}
	for i := range d.X {
		if len(d.X[i]) != len(d.FeatureNames) {
			return errors.Errorf("row %d has %d features, expected %d", i, len(d.X[i]), len(d.FeatureNames))
		}
		if d.Protected[i] != 0 && d.Protected[i] != 1 {
			return errors.Errorf("row %d has non-binary protected attribute %d", i, d.Protected[i])
		}
		if d.Labels[i] != 0 && d.Labels[i] != 1 {
			return errors.Errorf("row %d has non-binary label %d", i, d.Labels[i])
		}
	}
	return nil
}

// Copy deep-copies a dataset so interventions can modify it without touching
// the original.
func (d Dataset) Copy() Dataset {
	x := make([][]float64, len(d.X))
	for i, row := range d.X {
		x[i] = append([]float64{}, row...)
	}
	c := Dataset{
		Name:         d.Name,
		FeatureNames: append([]string{}, d.FeatureNames...),
		X:            x,
		Protected:    append([]int{}, d.Protected...),
		Labels:       append([]int{}, d.Labels...),
		Weights:      append([]float64{}, d.Weights...),
	}
	return c
}

// GroupIndices returns the row indices belonging to a protected group.
func (d Dataset) GroupIndices(group int) (idx []int) {
	for i, g := range d.Protected {
		if g == group {
			idx = append(idx, i)
		}
	}
	return
}

// Feature returns the column index of a named feature.
func (d Dataset) Feature(name string) (int, error) {
	for i, f := range d.FeatureNames {
		if f == name {
			return i, nil
		}
	}
	return 0, errors.Errorf("no feature named %s in dataset %s", name, d.Name)
}

// Column extracts a feature column as a vector.
func (d Dataset) Column(feature int) []float64 {
	col := make([]float64, len(d.X))
	for i, row := range d.X {
		col[i] = row[feature]
	}
	return col
}
