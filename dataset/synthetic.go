package dataset

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SyntheticHiringSource generates the synthetic hiring dataset instead of
// reading it from disk. Applicants are sampled from fixed distributions and
// hired by a logistic rule over their qualifications; Bias shifts the hiring
// logit in favour of the privileged group, injecting a controllable amount of
// direct discrimination.
type SyntheticHiringSource struct {
	N    int
	Bias float64
	Seed uint64
}

// Load generates the dataset. The path argument is ignored; generation is a
// deterministic function of the seed.
func (s SyntheticHiringSource) Load(path string) (Dataset, error) {
	src := rand.NewSource(s.Seed)

	group := distuv.Bernoulli{P: 0.5, Src: src}
	race := distuv.Bernoulli{P: 0.6, Src: src}
	experience := distuv.Normal{Mu: 8, Sigma: 4, Src: src}
	referred := distuv.Bernoulli{P: 0.3, Src: src}
	gpa := distuv.Normal{Mu: 3, Sigma: 0.5, Src: src}
	interview := distuv.Normal{Mu: 0, Sigma: 10, Src: src}
	hire := distuv.Uniform{Min: 0, Max: 1, Src: src}

	featureNames := []string{"race_white", "years_experience", "referred", "gpa", "interview_score"}

	x := make([][]float64, s.N)
	protected := make([]int, s.N)
	labels := make([]int, s.N)
	for i := 0; i < s.N; i++ {
		g := int(group.Rand())
		exp := clamp(experience.Rand(), 0, 40)
		ref := referred.Rand()
		gr := clamp(gpa.Rand(), 0, 4)
		score := clamp(55+2*exp+10*ref+interview.Rand(), 0, 100)

		logit := -9 + 0.15*exp + 1.2*ref + 0.8*gr + 0.05*score + s.Bias*float64(g)
		p := 1 / (1 + math.Exp(-logit))
		if hire.Rand() < p {
			labels[i] = 1
		}

		x[i] = []float64{race.Rand(), exp, ref, gr, score}
		protected[i] = g
	}

	return New("hiring", featureNames, x, protected, labels), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
