package intervene_test

import (
	"math"
	"testing"

	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/intervene"
)

// shifted builds a dataset where an otherwise innocuous feature is eight
// units higher for the privileged group, and a one-hot feature that full
// repair must leave alone.
func shifted() dataset.Dataset {
	return dataset.New("shifted",
		[]string{"score", "referred"},
		[][]float64{
			{1, 0}, {2, 1}, {3, 0}, {4, 1},
			{5, 0}, {6, 1}, {7, 0}, {8, 1},
		},
		[]int{0, 0, 0, 0, 1, 1, 1, 1},
		[]int{0, 0, 1, 1, 0, 0, 1, 1})
}

func groupMean(d dataset.Dataset, feature, group int) float64 {
	var sum, n float64
	for _, i := range d.GroupIndices(group) {
		sum += d.X[i][feature]
		n++
	}
	return sum / n
}

func TestFullRepairAlignsGroups(t *testing.T) {
	d := shifted()
	r, err := intervene.DisparateImpactRemover{RepairLevel: 1}.Apply(d)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(groupMean(r, 0, 0)-groupMean(r, 0, 1)) > 1e-9 {
		t.Fatalf("expected full repair to align group means, got %f and %f",
			groupMean(r, 0, 0), groupMean(r, 0, 1))
	}

	// The one-hot column is an indicator and must be untouched.
	for i := range r.X {
		if r.X[i][1] != d.X[i][1] {
			t.Fatal("repair modified an indicator column")
		}
	}

	// The original dataset is untouched.
	if d.X[0][0] != 1 {
		t.Fatal("repair modified the original dataset")
	}
}

func TestNoRepairIsIdentity(t *testing.T) {
	d := shifted()
	r, err := intervene.DisparateImpactRemover{RepairLevel: 0}.Apply(d)
	if err != nil {
		t.Fatal(err)
	}
	for i := range r.X {
		if r.X[i][0] != d.X[i][0] {
			t.Fatal("a repair level of zero must not modify features")
		}
	}
}

func TestRepairLevelBounds(t *testing.T) {
	if _, err := (intervene.DisparateImpactRemover{RepairLevel: 1.5}).Apply(shifted()); err == nil {
		t.Fatal("expected a repair level above 1 to fail")
	}
}
