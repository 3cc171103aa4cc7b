package eval

import (
	"math"

	"github.com/hscells/parity/stats"
)

type demographicParityDifference struct{}
type disparateImpact struct{}
type truePositiveRateDifference struct{}
type falsePositiveRateDifference struct{}
type falseNegativeRateDifference struct{}
type equalizedOddsDifference struct{}
type averageOddsDifference struct{}

var (
	// DemographicParityDifference is the absolute difference in positive
	// prediction rates between the two protected groups.
	DemographicParityDifference = demographicParityDifference{}
	// DisparateImpact is the ratio of the unprivileged group's selection rate
	// to the privileged group's. The four-fifths rule flags values below 0.8.
	DisparateImpact = disparateImpact{}
	// TruePositiveRateDifference is the difference in recall between groups.
	TruePositiveRateDifference = truePositiveRateDifference{}
	// FalsePositiveRateDifference is the difference in false positive rates between groups.
	FalsePositiveRateDifference = falsePositiveRateDifference{}
	// FalseNegativeRateDifference is the difference in false negative rates between groups.
	FalseNegativeRateDifference = falseNegativeRateDifference{}
	// EqualizedOddsDifference is the larger of the absolute TPR and FPR
	// differences; zero means the classifier satisfies equalized odds.
	EqualizedOddsDifference = equalizedOddsDifference{}
	// AverageOddsDifference is the mean of the TPR and FPR differences.
	AverageOddsDifference = averageOddsDifference{}
)

func (demographicParityDifference) Name() string {
	return "DemographicParityDifference"
}

func (demographicParityDifference) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	return math.Abs(m[0].SelectionRate() - m[1].SelectionRate())
}

func (disparateImpact) Name() string {
	return "DisparateImpact"
}

func (disparateImpact) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	privileged := m[1].SelectionRate()
	if privileged == 0 {
		return 0
	}
	return m[0].SelectionRate() / privileged
}

func (truePositiveRateDifference) Name() string {
	return "TruePositiveRateDifference"
}

func (truePositiveRateDifference) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	return m[1].TPR() - m[0].TPR()
}

func (falsePositiveRateDifference) Name() string {
	return "FalsePositiveRateDifference"
}

func (falsePositiveRateDifference) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	return m[1].FPR() - m[0].FPR()
}

func (falseNegativeRateDifference) Name() string {
	return "FalseNegativeRateDifference"
}

func (falseNegativeRateDifference) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	return m[1].FNR() - m[0].FNR()
}

func (equalizedOddsDifference) Name() string {
	return "EqualizedOddsDifference"
}

func (equalizedOddsDifference) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	tpr := math.Abs(m[1].TPR() - m[0].TPR())
	fpr := math.Abs(m[1].FPR() - m[0].FPR())
	return math.Max(tpr, fpr)
}

func (averageOddsDifference) Name() string {
	return "AverageOddsDifference"
}

func (averageOddsDifference) Score(p stats.Predictions) float64 {
	m := stats.GroupConfusion(p)
	return ((m[1].TPR() - m[0].TPR()) + (m[1].FPR() - m[0].FPR())) / 2
}
