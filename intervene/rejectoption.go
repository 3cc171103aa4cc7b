package intervene

import (
	"github.com/hscells/parity/stats"
	"github.com/pkg/errors"
)

// RejectOption is a post-processing intervention that reassigns predictions
// the classifier is least certain about. Inside the critical band of scores,
// unprivileged individuals receive the favourable outcome and privileged
// individuals the unfavourable one; everything outside the band is untouched.
type RejectOption struct {
	Low, High float64
}

// Name is RejectOption.
func (RejectOption) Name() string {
	return "RejectOption"
}

// Apply reclassifies predictions inside the critical band. Predictions must
// carry scores.
func (r RejectOption) Apply(p stats.Predictions) (stats.Predictions, error) {
	if len(p.Scores) == 0 {
		return stats.Predictions{}, errors.New("reject option classification requires classifier scores")
	}
	if r.Low > r.High {
		return stats.Predictions{}, errors.Errorf("critical band [%f,%f] is inverted", r.Low, r.High)
	}
	q := stats.Predictions{
		Classes: append([]int{}, p.Classes...),
		Scores:  p.Scores,
		Labels:  p.Labels,
		Groups:  p.Groups,
	}
	for i, s := range p.Scores {
		if s < r.Low || s > r.High {
			continue
		}
		if p.Groups[i] == 0 {
			q.Classes[i] = 1
		} else {
			q.Classes[i] = 0
		}
	}
	return q, nil
}
