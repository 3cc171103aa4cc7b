package intervene_test

import (
	"testing"

	"github.com/hscells/parity/eval"
	"github.com/hscells/parity/intervene"
	"github.com/hscells/parity/stats"
)

// miscalibrated simulates a model that systematically under-scores the
// unprivileged group: its positives sit below the global threshold.
func miscalibrated() stats.Predictions {
	scores := []float64{
		0.9, 0.8, 0.3, 0.2, // privileged, well calibrated at 0.5
		0.45, 0.4, 0.1, 0.05, // unprivileged, positives under-scored
	}
	labels := []int{1, 1, 0, 0, 1, 1, 0, 0}
	groups := []int{1, 1, 1, 1, 0, 0, 0, 0}
	var classes []int
	for _, s := range scores {
		if s >= 0.5 {
			classes = append(classes, 1)
		} else {
			classes = append(classes, 0)
		}
	}
	return stats.Predictions{Classes: classes, Scores: scores, Labels: labels, Groups: groups}
}

func TestThresholdCalibrator(t *testing.T) {
	p := miscalibrated()
	before := eval.EqualizedOddsDifference.Score(p)
	if before != 1 {
		t.Fatalf("expected the miscalibrated model to violate equalized odds, got %f", before)
	}

	calibrated, err := intervene.ThresholdCalibrator{}.Apply(p)
	if err != nil {
		t.Fatal(err)
	}
	after := eval.EqualizedOddsDifference.Score(calibrated)
	if after != 0 {
		t.Fatalf("expected per-group thresholds to satisfy equalized odds, got %f", after)
	}
	if acc := eval.Accuracy.Score(calibrated); acc != 1 {
		t.Fatalf("expected the calibrated thresholds to classify perfectly, got %f", acc)
	}
}

func TestCalibrateThresholds(t *testing.T) {
	t0, t1, err := intervene.ThresholdCalibrator{}.Calibrate(miscalibrated())
	if err != nil {
		t.Fatal(err)
	}
	// The unprivileged threshold must drop below the under-scored positives.
	if t0 > 0.4 {
		t.Errorf("expected an unprivileged threshold at or below 0.4, got %f", t0)
	}
	if t1 <= 0.3 || t1 > 0.8 {
		t.Errorf("expected a privileged threshold separating 0.3 from 0.8, got %f", t1)
	}
}

func TestThresholdCalibratorRequiresScores(t *testing.T) {
	_, err := intervene.ThresholdCalibrator{}.Apply(stats.Predictions{Classes: []int{1}})
	if err == nil {
		t.Fatal("expected calibration without scores to fail")
	}
}
