package model_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/model"
)

// separable builds a trivially separable one-feature dataset.
func separable(n int) dataset.Dataset {
	x := make([][]float64, n)
	labels := make([]int, n)
	protected := make([]int, n)
	for i := 0; i < n; i++ {
		if i < n/2 {
			x[i] = []float64{-1}
		} else {
			x[i] = []float64{1}
			labels[i] = 1
		}
		protected[i] = i % 2
	}
	return dataset.New("separable", []string{"x"}, x, protected, labels)
}

func TestTrainSeparable(t *testing.T) {
	d := separable(100)
	m := model.NewLogisticRegression(0.1, 100, 0, 42)
	if err := m.Train(d); err != nil {
		t.Fatal(err)
	}

	scores, err := m.PredictProba(d.X)
	if err != nil {
		t.Fatal(err)
	}
	classes := model.Predict(scores, 0.5)
	correct := 0
	for i := range classes {
		if classes[i] == d.Labels[i] {
			correct++
		}
	}
	if correct != d.Len() {
		t.Fatalf("expected perfect separation, got %d/%d", correct, d.Len())
	}
}

func TestWeightedTraining(t *testing.T) {
	// All rows look identical; the label is 1 for half of them. Upweighting
	// the positive rows must pull the predicted probability above one half.
	n := 40
	x := make([][]float64, n)
	labels := make([]int, n)
	protected := make([]int, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{1}
		if i%2 == 0 {
			labels[i] = 1
		}
	}
	d := dataset.New("uniform", []string{"x"}, x, protected, labels)
	for i := range d.Weights {
		if d.Labels[i] == 1 {
			d.Weights[i] = 3
		}
	}

	m := model.NewLogisticRegression(0.1, 200, 0, 42)
	if err := m.Train(d); err != nil {
		t.Fatal(err)
	}
	scores, err := m.PredictProba([][]float64{{1}})
	if err != nil {
		t.Fatal(err)
	}
	if scores[0] < 0.65 {
		t.Fatalf("expected upweighted positives to dominate, got %f", scores[0])
	}
}

func TestFairnessPenaltyShrinksScoreGap(t *testing.T) {
	// Group membership is the only feature, so an unconstrained model scores
	// the groups far apart.
	n := 100
	x := make([][]float64, n)
	labels := make([]int, n)
	protected := make([]int, n)
	for i := 0; i < n; i++ {
		g := i % 2
		x[i] = []float64{float64(g)}
		protected[i] = g
		labels[i] = g
	}
	d := dataset.New("polarised", []string{"g"}, x, protected, labels)

	gap := func(m *model.LogisticRegression) float64 {
		if err := m.Train(d); err != nil {
			t.Fatal(err)
		}
		scores, err := m.PredictProba(d.X)
		if err != nil {
			t.Fatal(err)
		}
		var g0, g1 float64
		for i, s := range scores {
			if protected[i] == 0 {
				g0 += s
			} else {
				g1 += s
			}
		}
		return math.Abs(g1-g0) / float64(n/2)
	}

	baseline := gap(model.NewLogisticRegression(0.1, 200, 0, 42))
	constrained := gap(model.NewPrejudiceRemover(5, 0.1, 200, 0, 42))
	if constrained >= baseline {
		t.Fatalf("expected the fairness penalty to shrink the score gap: baseline %f, constrained %f", baseline, constrained)
	}
}

func TestOutputRoundTrip(t *testing.T) {
	d := separable(100)
	m := model.NewLogisticRegression(0.1, 100, 0, 42)
	if err := m.Train(d); err != nil {
		t.Fatal(err)
	}

	var buff bytes.Buffer
	if err := m.Output(&buff); err != nil {
		t.Fatal(err)
	}
	loaded, err := model.LoadLogisticRegression(&buff)
	if err != nil {
		t.Fatal(err)
	}

	scores, err := loaded.PredictProba([][]float64{{1}, {-1}})
	if err != nil {
		t.Fatal(err)
	}
	if scores[0] <= 0.5 || scores[1] >= 0.5 {
		t.Fatalf("loaded model disagrees with the trained model: %v", scores)
	}
}

func TestPredictProbaUntrained(t *testing.T) {
	m := model.NewLogisticRegression(0.1, 10, 0, 42)
	if _, err := m.PredictProba([][]float64{{1}}); err == nil {
		t.Fatal("expected scoring an untrained model to fail")
	}
}
