package analysis

import (
	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/stats"
	"gonum.org/v1/gonum/stat"
)

// SampleCount is a measurement that counts the number of rows in the dataset.
type SampleCount struct{}

// GroupBalance is a measurement of how evenly the protected groups are
// represented, as the ratio of the smaller group to the larger.
type GroupBalance struct{}

// BaseRateDifference is a measurement of the difference in favourable label
// rates between the privileged and unprivileged groups, before any model is
// involved. A large value means the labels themselves encode disparity.
type BaseRateDifference struct{}

// LabelDisparateImpact is the disparate impact ratio of the labels: the
// unprivileged base rate over the privileged base rate.
type LabelDisparateImpact struct{}

// ProtectedCorrelation is a measurement of the Pearson correlation between a
// named feature and the protected attribute. Highly correlated features leak
// group membership into models trained without the protected attribute.
type ProtectedCorrelation struct {
	Feature string
}

// Name is SampleCount.
func (SampleCount) Name() string {
	return "SampleCount"
}

// Execute counts the rows of the dataset.
func (SampleCount) Execute(d dataset.Dataset, s stats.StatisticsSource) (float64, error) {
	return float64(d.Len()), nil
}

// Name is GroupBalance.
func (GroupBalance) Name() string {
	return "GroupBalance"
}

// Execute computes the ratio of the smaller protected group to the larger.
func (GroupBalance) Execute(d dataset.Dataset, s stats.StatisticsSource) (float64, error) {
	a, b := s.GroupSize(d, 0), s.GroupSize(d, 1)
	if a > b {
		a, b = b, a
	}
	if b == 0 {
		return 0, nil
	}
	return a / b, nil
}

// Name is BaseRateDifference.
func (BaseRateDifference) Name() string {
	return "BaseRateDifference"
}

// Execute computes the privileged base rate minus the unprivileged base rate.
func (BaseRateDifference) Execute(d dataset.Dataset, s stats.StatisticsSource) (float64, error) {
	return s.BaseRate(d, 1) - s.BaseRate(d, 0), nil
}

// Name is LabelDisparateImpact.
func (LabelDisparateImpact) Name() string {
	return "LabelDisparateImpact"
}

// Execute computes the ratio of unprivileged to privileged base rates.
func (LabelDisparateImpact) Execute(d dataset.Dataset, s stats.StatisticsSource) (float64, error) {
	privileged := s.BaseRate(d, 1)
	if privileged == 0 {
		return 0, nil
	}
	return s.BaseRate(d, 0) / privileged, nil
}

// Name is ProtectedCorrelation with the feature appended.
func (p ProtectedCorrelation) Name() string {
	return "ProtectedCorrelation_" + p.Feature
}

// Execute computes the correlation between the feature column and group membership.
func (p ProtectedCorrelation) Execute(d dataset.Dataset, s stats.StatisticsSource) (float64, error) {
	f, err := d.Feature(p.Feature)
	if err != nil {
		return 0, err
	}
	groups := make([]float64, d.Len())
	for i, g := range d.Protected {
		groups[i] = float64(g)
	}
	return stat.Correlation(d.Column(f), groups, d.Weights), nil
}
