package intervene

import (
	"github.com/hscells/parity/eval"
	"github.com/hscells/parity/stats"
	"github.com/pkg/errors"
)

// ThresholdCalibrator is a post-processing intervention that searches for
// per-group classification thresholds minimising the equalized-odds
// difference. The search is exhaustive over a grid of candidate thresholds
// for each group; among threshold pairs satisfying the accuracy floor, the
// pair with the lowest odds difference wins, ties broken by accuracy.
type ThresholdCalibrator struct {
	// Grid is the number of candidate thresholds per group; 0 means 100.
	Grid int
	// MinAccuracy rejects threshold pairs below this accuracy. When no pair
	// satisfies the floor, the search falls back to ignoring it.
	MinAccuracy float64
}

// Name is ThresholdCalibrator.
func (ThresholdCalibrator) Name() string {
	return "ThresholdCalibrator"
}

// Calibrate searches for the per-group thresholds. Predictions must carry scores.
func (t ThresholdCalibrator) Calibrate(p stats.Predictions) (t0, t1 float64, err error) {
	if len(p.Scores) == 0 {
		return 0, 0, errors.New("threshold calibration requires classifier scores")
	}
	grid := t.Grid
	if grid == 0 {
		grid = 100
	}

	type candidate struct {
		t0, t1    float64
		odds      float64
		accuracy  float64
		satisfies bool
	}
	best := candidate{t0: 0.5, t1: 0.5, odds: 2, accuracy: -1}

	for i := 1; i < grid; i++ {
		for j := 1; j < grid; j++ {
			c := candidate{t0: float64(i) / float64(grid), t1: float64(j) / float64(grid)}
			thresholded := t.apply(p, c.t0, c.t1)
			c.odds = eval.EqualizedOddsDifference.Score(thresholded)
			c.accuracy = eval.Accuracy.Score(thresholded)
			c.satisfies = c.accuracy >= t.MinAccuracy

			if c.satisfies && !best.satisfies {
				best = c
				continue
			}
			if c.satisfies == best.satisfies {
				if c.odds < best.odds || (c.odds == best.odds && c.accuracy > best.accuracy) {
					best = c
				}
			}
		}
	}
	return best.t0, best.t1, nil
}

// Apply calibrates thresholds on the predictions and reclassifies them.
func (t ThresholdCalibrator) Apply(p stats.Predictions) (stats.Predictions, error) {
	t0, t1, err := t.Calibrate(p)
	if err != nil {
		return stats.Predictions{}, err
	}
	return t.apply(p, t0, t1), nil
}

func (ThresholdCalibrator) apply(p stats.Predictions, t0, t1 float64) stats.Predictions {
	q := stats.Predictions{
		Classes: make([]int, len(p.Scores)),
		Scores:  p.Scores,
		Labels:  p.Labels,
		Groups:  p.Groups,
	}
	for i, s := range p.Scores {
		threshold := t0
		if p.Groups[i] == 1 {
			threshold = t1
		}
		if s >= threshold {
			q.Classes[i] = 1
		}
	}
	return q
}
