package dataset_test

import (
	"testing"

	"github.com/hscells/parity/dataset"
)

func TestSplit(t *testing.T) {
	d, err := dataset.NewCSVSource(dataset.HiringSchema()).Load("testdata/hiring.csv")
	if err != nil {
		t.Fatal(err)
	}

	train, test := dataset.Split(d, 0.25, 42)
	if test.Len() != 2 {
		t.Fatalf("expected 2 test rows, got %d", test.Len())
	}
	if train.Len() != 6 {
		t.Fatalf("expected 6 train rows, got %d", train.Len())
	}

	// The same seed must produce the same split.
	train2, test2 := dataset.Split(d, 0.25, 42)
	for i := range test.X {
		if test.X[i][1] != test2.X[i][1] {
			t.Fatal("split is not deterministic")
		}
	}
	for i := range train.X {
		if train.Labels[i] != train2.Labels[i] {
			t.Fatal("split is not deterministic")
		}
	}
}

func TestSplitCopies(t *testing.T) {
	d, err := dataset.NewCSVSource(dataset.HiringSchema()).Load("testdata/hiring.csv")
	if err != nil {
		t.Fatal(err)
	}
	train, _ := dataset.Split(d, 0.25, 42)
	train.X[0][0] = -1
	for _, row := range d.X {
		if row[0] == -1 {
			t.Fatal("split rows alias the original dataset")
		}
	}
}
