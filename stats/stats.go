// Package stats provides group statistics over datasets and model predictions.
package stats

import (
	"github.com/hscells/parity/dataset"
)

// Predictions pairs the output of a classifier with the ground truth and the
// protected group of each scored individual. All slices are index-aligned;
// Scores may be nil when only hard classes are available (e.g. after
// post-processing).
type Predictions struct {
	Classes []int
	Scores  []float64
	Labels  []int
	Groups  []int
}

// Len is the number of scored individuals.
func (p Predictions) Len() int {
	return len(p.Classes)
}

// Group filters predictions down to a single protected group.
func (p Predictions) Group(group int) Predictions {
	var g Predictions
	for i, v := range p.Groups {
		if v != group {
			continue
		}
		g.Classes = append(g.Classes, p.Classes[i])
		g.Labels = append(g.Labels, p.Labels[i])
		g.Groups = append(g.Groups, v)
		if p.Scores != nil {
			g.Scores = append(g.Scores, p.Scores[i])
		}
	}
	return g
}

// ConfusionMatrix holds the four outcome counts of a binary classifier.
type ConfusionMatrix struct {
	TP, FP, TN, FN float64
}

// Confusion computes the confusion matrix over a set of predictions.
func Confusion(p Predictions) ConfusionMatrix {
	var m ConfusionMatrix
	for i := range p.Classes {
		switch {
		case p.Classes[i] == 1 && p.Labels[i] == 1:
			m.TP++
		case p.Classes[i] == 1 && p.Labels[i] == 0:
			m.FP++
		case p.Classes[i] == 0 && p.Labels[i] == 0:
			m.TN++
		default:
			m.FN++
		}
	}
	return m
}

// GroupConfusion computes a confusion matrix for each protected group.
func GroupConfusion(p Predictions) map[int]ConfusionMatrix {
	return map[int]ConfusionMatrix{
		0: Confusion(p.Group(0)),
		1: Confusion(p.Group(1)),
	}
}

// N is the total number of outcomes in the matrix.
func (m ConfusionMatrix) N() float64 {
	return m.TP + m.FP + m.TN + m.FN
}

// SelectionRate is the rate of positive predictions, P(yhat=1).
func (m ConfusionMatrix) SelectionRate() float64 {
	return ratio(m.TP+m.FP, m.N())
}

// TPR is the true positive rate, P(yhat=1|y=1).
func (m ConfusionMatrix) TPR() float64 {
	return ratio(m.TP, m.TP+m.FN)
}

// FPR is the false positive rate, P(yhat=1|y=0).
func (m ConfusionMatrix) FPR() float64 {
	return ratio(m.FP, m.FP+m.TN)
}

// FNR is the false negative rate, P(yhat=0|y=1).
func (m ConfusionMatrix) FNR() float64 {
	return ratio(m.FN, m.TP+m.FN)
}

// TNR is the true negative rate, P(yhat=0|y=0).
func (m ConfusionMatrix) TNR() float64 {
	return ratio(m.TN, m.FP+m.TN)
}

// ratio guards against empty groups; a zero denominator scores zero rather
// than producing a NaN that would poison downstream disparity arithmetic.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// StatisticsSource represents a source of statistics about a dataset before
// any model is involved: group sizes and the base rates of the label within
// each group.
type StatisticsSource interface {
	GroupSize(d dataset.Dataset, group int) float64
	BaseRate(d dataset.Dataset, group int) float64
}

// DatasetStatisticsSource computes statistics directly from the in-memory
// dataset.
type DatasetStatisticsSource struct{}

// NewDatasetStatisticsSource creates a statistics source over in-memory datasets.
func NewDatasetStatisticsSource() DatasetStatisticsSource {
	return DatasetStatisticsSource{}
}

// GroupSize is the weighted number of individuals in a protected group.
func (DatasetStatisticsSource) GroupSize(d dataset.Dataset, group int) float64 {
	var n float64
	for i, g := range d.Protected {
		if g == group {
			n += d.Weights[i]
		}
	}
	return n
}

// BaseRate is the weighted rate of favourable labels within a protected group.
func (s DatasetStatisticsSource) BaseRate(d dataset.Dataset, group int) float64 {
	var favourable float64
	for i, g := range d.Protected {
		if g == group && d.Labels[i] == 1 {
			favourable += d.Weights[i]
		}
	}
	return ratio(favourable, s.GroupSize(d, group))
}
