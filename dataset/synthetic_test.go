package dataset_test

import (
	"testing"

	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/stats"
)

func TestSyntheticHiring(t *testing.T) {
	s := dataset.SyntheticHiringSource{N: 2000, Bias: 2, Seed: 42}
	d, err := s.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2000 {
		t.Fatalf("expected 2000 rows, got %d", d.Len())
	}
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}

	// The bias knob must favour the privileged group.
	src := stats.NewDatasetStatisticsSource()
	gap := src.BaseRate(d, 1) - src.BaseRate(d, 0)
	if gap <= 0.05 {
		t.Fatalf("expected a biased base rate gap, got %f", gap)
	}

	// Generation is a deterministic function of the seed.
	d2, err := s.Load("")
	if err != nil {
		t.Fatal(err)
	}
	for i := range d.X {
		if d.X[i][1] != d2.X[i][1] || d.Labels[i] != d2.Labels[i] {
			t.Fatal("generation is not deterministic")
		}
	}
}
