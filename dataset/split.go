package dataset

import (
	"math/rand"
)

// Split partitions a dataset into train and test portions. The split is a
// deterministic function of the seed, so experiments are reproducible.
func Split(d Dataset, testFraction float64, seed int64) (train, test Dataset) {
	perm := rand.New(rand.NewSource(seed)).Perm(d.Len())
	n := int(float64(d.Len()) * testFraction)

	test = take(d, perm[:n], "_test")
	train = take(d, perm[n:], "_train")
	return
}

func take(d Dataset, idx []int, suffix string) Dataset {
	t := Dataset{
		Name:         d.Name + suffix,
		FeatureNames: append([]string{}, d.FeatureNames...),
		X:            make([][]float64, len(idx)),
		Protected:    make([]int, len(idx)),
		Labels:       make([]int, len(idx)),
		Weights:      make([]float64, len(idx)),
	}
	for i, j := range idx {
		t.X[i] = append([]float64{}, d.X[j]...)
		t.Protected[i] = d.Protected[j]
		t.Labels[i] = d.Labels[j]
		t.Weights[i] = d.Weights[j]
	}
	return t
}
