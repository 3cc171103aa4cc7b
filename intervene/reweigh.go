package intervene

import (
	"github.com/hscells/parity/dataset"
	"github.com/pkg/errors"
)

// Reweigh assigns each instance the weight that makes group membership
// statistically independent of the label: w(g,y) = P(g)P(y)/P(g,y). Groups
// that the labels favour are weighted down and disadvantaged groups weighted
// up, so a weight-aware learner trains as if the labels carried no disparity.
type Reweigh struct{}

// Name is Reweigh.
func (Reweigh) Name() string {
	return "Reweigh"
}

// Apply computes the reweighing weights over a copy of the dataset. Existing
// instance weights are treated as counts.
func (Reweigh) Apply(d dataset.Dataset) (dataset.Dataset, error) {
	if err := d.Validate(); err != nil {
		return dataset.Dataset{}, errors.Wrap(err, "cannot reweigh an invalid dataset")
	}

	var n float64
	var group, label [2]float64
	var joint [2][2]float64
	for i := range d.X {
		w := d.Weights[i]
		n += w
		group[d.Protected[i]] += w
		label[d.Labels[i]] += w
		joint[d.Protected[i]][d.Labels[i]] += w
	}
	if n == 0 {
		return dataset.Dataset{}, errors.New("cannot reweigh an empty dataset")
	}

	r := d.Copy()
	r.Name = d.Name + "_reweighed"
	for i := range r.X {
		j := joint[d.Protected[i]][d.Labels[i]]
		if j == 0 {
			// An empty group/label cell cannot occur for any instance in it,
			// so this only guards the arithmetic.
			continue
		}
		r.Weights[i] = d.Weights[i] * (group[d.Protected[i]] * label[d.Labels[i]]) / (n * j)
	}
	return r, nil
}
