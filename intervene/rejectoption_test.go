package intervene_test

import (
	"testing"

	"github.com/hscells/parity/intervene"
	"github.com/hscells/parity/stats"
)

func TestRejectOption(t *testing.T) {
	p := stats.Predictions{
		Classes: []int{1, 0, 1, 0},
		Scores:  []float64{0.9, 0.45, 0.55, 0.1},
		Labels:  []int{1, 1, 0, 0},
		Groups:  []int{1, 0, 1, 0},
	}
	q, err := intervene.RejectOption{Low: 0.4, High: 0.6}.Apply(p)
	if err != nil {
		t.Fatal(err)
	}

	// Outside the band predictions are untouched; inside, the unprivileged
	// individual is favoured and the privileged one is not.
	expected := []int{1, 1, 0, 0}
	for i, want := range expected {
		if q.Classes[i] != want {
			t.Errorf("row %d: expected class %d, got %d", i, want, q.Classes[i])
		}
	}

	// The input predictions must not be modified.
	if p.Classes[1] != 0 || p.Classes[2] != 1 {
		t.Fatal("reject option modified its input")
	}
}

func TestRejectOptionInvertedBand(t *testing.T) {
	_, err := intervene.RejectOption{Low: 0.6, High: 0.4}.Apply(stats.Predictions{Scores: []float64{0.5}})
	if err == nil {
		t.Fatal("expected an inverted band to fail")
	}
}
