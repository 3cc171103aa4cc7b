package intervene

import (
	"sort"

	"github.com/hscells/parity/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// DisparateImpactRemover repairs feature distributions so they no longer
// reveal group membership. Each repaired value is moved from its within-group
// quantile towards the same quantile of the combined distribution.
// RepairLevel interpolates between no repair (0) and full repair (1).
type DisparateImpactRemover struct {
	RepairLevel float64
	// Features names the columns to repair. When empty, every non-indicator
	// column is repaired.
	Features []string
}

// Name is DisparateImpactRemover.
func (DisparateImpactRemover) Name() string {
	return "DisparateImpactRemover"
}

// Apply repairs a copy of the dataset.
func (r DisparateImpactRemover) Apply(d dataset.Dataset) (dataset.Dataset, error) {
	if r.RepairLevel < 0 || r.RepairLevel > 1 {
		return dataset.Dataset{}, errors.Errorf("repair level %f is not in [0,1]", r.RepairLevel)
	}

	features, err := r.features(d)
	if err != nil {
		return dataset.Dataset{}, err
	}

	repaired := d.Copy()
	repaired.Name = d.Name + "_repaired"
	for _, f := range features {
		overall := d.Column(f)
		sort.Float64s(overall)

		for _, group := range []int{0, 1} {
			idx := d.GroupIndices(group)
			if len(idx) == 0 {
				continue
			}
			// Rank the group's values to obtain within-group quantiles.
			sort.Slice(idx, func(a, b int) bool {
				return d.X[idx[a]][f] < d.X[idx[b]][f]
			})
			for rank, i := range idx {
				q := (float64(rank) + 0.5) / float64(len(idx))
				target := stat.Quantile(q, stat.Empirical, overall, nil)
				repaired.X[i][f] = (1-r.RepairLevel)*d.X[i][f] + r.RepairLevel*target
			}
		}
	}
	return repaired, nil
}

func (r DisparateImpactRemover) features(d dataset.Dataset) ([]int, error) {
	if len(r.Features) > 0 {
		features := make([]int, len(r.Features))
		for i, name := range r.Features {
			f, err := d.Feature(name)
			if err != nil {
				return nil, err
			}
			features[i] = f
		}
		return features, nil
	}
	var features []int
	for f := range d.FeatureNames {
		if !indicatorColumn(d.Column(f)) {
			features = append(features, f)
		}
	}
	return features, nil
}

// indicatorColumn reports whether every value in the column is 0 or 1.
// Quantile repair would destroy one-hot encoded columns.
func indicatorColumn(col []float64) bool {
	for _, v := range col {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}
