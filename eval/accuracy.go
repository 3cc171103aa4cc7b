package eval

import (
	"fmt"
	"sort"

	"github.com/hscells/parity/stats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

type accuracyEvaluator struct{}
type precisionEvaluator struct{}
type recallEvaluator struct{}
type aucEvaluator struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
type FMeasure struct {
	beta float64
}

var (
	// Accuracy calculates the rate of correct classifications.
	Accuracy = accuracyEvaluator{}
	// Precision calculates precision.
	Precision = precisionEvaluator{}
	// Recall calculates recall.
	Recall = recallEvaluator{}
	// AUC calculates the area under the ROC curve of the classifier scores.
	AUC = aucEvaluator{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{beta: 1}
	// F05Measure is f-measure with beta=0.5.
	F05Measure = FMeasure{beta: 0.5}
	// F3Measure is f-measure with beta=3.
	F3Measure = FMeasure{beta: 3}
)

func (accuracyEvaluator) Name() string {
	return "Accuracy"
}

func (accuracyEvaluator) Score(p stats.Predictions) float64 {
	m := stats.Confusion(p)
	if m.N() == 0 {
		return 0
	}
	return (m.TP + m.TN) / m.N()
}

func (precisionEvaluator) Name() string {
	return "Precision"
}

func (precisionEvaluator) Score(p stats.Predictions) float64 {
	m := stats.Confusion(p)
	if m.TP+m.FP == 0 {
		return 0
	}
	return m.TP / (m.TP + m.FP)
}

func (recallEvaluator) Name() string {
	return "Recall"
}

func (recallEvaluator) Score(p stats.Predictions) float64 {
	return stats.Confusion(p).TPR()
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(p stats.Predictions) float64 {
	precision := Precision.Score(p)
	recall := Recall.Score(p)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := f.beta * f.beta
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.beta)
}

func (aucEvaluator) Name() string {
	return "AUC"
}

func (aucEvaluator) Score(p stats.Predictions) float64 {
	if len(p.Scores) == 0 {
		return 0
	}
	// stat.ROC requires the scores in ascending order with the class
	// slice permuted alongside.
	s := rocSort{
		scores:  append([]float64{}, p.Scores...),
		classes: make([]bool, len(p.Labels)),
	}
	for i, label := range p.Labels {
		s.classes[i] = label == 1
	}
	sort.Sort(s)
	tpr, fpr, _ := stat.ROC(nil, s.scores, s.classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

type rocSort struct {
	scores  []float64
	classes []bool
}

func (s rocSort) Len() int { return len(s.scores) }

func (s rocSort) Less(i, j int) bool { return s.scores[i] < s.scores[j] }

func (s rocSort) Swap(i, j int) {
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
	s.classes[i], s.classes[j] = s.classes[j], s.classes[i]
}
