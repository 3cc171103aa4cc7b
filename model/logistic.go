package model

import (
	"encoding/json"
	"io"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/hscells/parity/dataset"
	"github.com/pkg/errors"
)

// LogisticRegression is a binary logistic regression classifier trained with
// stochastic gradient descent. Instance weights scale each example's gradient
// contribution, which is how pre-processing reweighing feeds into training.
//
// A non-zero FairnessPenalty adds a group-covariance term to the gradient that
// pushes the model's scores towards independence from the protected attribute,
// turning the model into an in-processing intervention.
type LogisticRegression struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`

	Lr              float64 `json:"-"`
	Epochs          int     `json:"-"`
	L2              float64 `json:"-"`
	FairnessPenalty float64 `json:"-"`
	Seed            int64   `json:"-"`
	// Verbose turns on a progress bar over training epochs.
	Verbose bool `json:"-"`
}

// NewLogisticRegression initialises an untrained logistic regression model.
func NewLogisticRegression(lr float64, epochs int, l2 float64, seed int64) *LogisticRegression {
	return &LogisticRegression{
		Lr:     lr,
		Epochs: epochs,
		L2:     l2,
		Seed:   seed,
	}
}

// NewPrejudiceRemover initialises a logistic regression with a fairness
// penalty of strength eta, after the prejudice remover regulariser.
func NewPrejudiceRemover(eta, lr float64, epochs int, l2 float64, seed int64) *LogisticRegression {
	m := NewLogisticRegression(lr, epochs, l2, seed)
	m.FairnessPenalty = eta
	return m
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Train fits the model with SGD. Training always starts from freshly
// initialised weights, so the same model value can be trained once per
// experiment scenario.
func (m *LogisticRegression) Train(d dataset.Dataset) error {
	if err := d.Validate(); err != nil {
		return errors.Wrap(err, "cannot train on an invalid dataset")
	}
	if d.Len() == 0 {
		return errors.New("cannot train on an empty dataset")
	}

	rng := rand.New(rand.NewSource(m.Seed))
	m.Weights = make([]float64, len(d.FeatureNames))
	for i := range m.Weights {
		// Small random weights to break symmetry.
		m.Weights[i] = rng.NormFloat64() * 0.01
	}
	m.Bias = 0

	// Mean group membership, for the covariance fairness penalty.
	var gbar float64
	for _, g := range d.Protected {
		gbar += float64(g)
	}
	gbar /= float64(d.Len())

	var bar *pb.ProgressBar
	if m.Verbose {
		bar = pb.StartNew(m.Epochs)
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		for _, i := range rng.Perm(d.Len()) {
			row := d.X[i]
			z := m.Bias
			for j, v := range row {
				z += m.Weights[j] * v
			}
			p := sigmoid(z)

			// Weighted log-loss gradient.
			g := d.Weights[i] * (p - float64(d.Labels[i]))
			// Covariance penalty gradient: scores should not co-vary with
			// group membership.
			g += m.FairnessPenalty * (float64(d.Protected[i]) - gbar) * p * (1 - p)

			for j, v := range row {
				m.Weights[j] -= m.Lr * (g*v + m.L2*m.Weights[j])
			}
			m.Bias -= m.Lr * g
		}
		if m.Verbose {
			bar.Increment()
		}
	}
	if m.Verbose {
		bar.Finish()
	}
	return nil
}

// PredictProba computes the probability of the favourable outcome for each row.
// Rows are scored in parallel across the available cores.
func (m *LogisticRegression) PredictProba(x [][]float64) ([]float64, error) {
	if m.Weights == nil {
		return nil, errors.New("model has not been trained")
	}
	scores := make([]float64, len(x))

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(x) + workers - 1) / workers
	var wg sync.WaitGroup
	var bad error
	var mu sync.Mutex
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > len(x) {
			end = len(x)
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if len(x[i]) != len(m.Weights) {
					mu.Lock()
					bad = errors.Errorf("row %d has %d features, model has %d", i, len(x[i]), len(m.Weights))
					mu.Unlock()
					return
				}
				z := m.Bias
				for j, v := range x[i] {
					z += m.Weights[j] * v
				}
				scores[i] = sigmoid(z)
			}
		}(start, end)
	}
	wg.Wait()
	if bad != nil {
		return nil, bad
	}
	return scores, nil
}

// Output writes the learned parameters as JSON.
func (m *LogisticRegression) Output(w io.Writer) error {
	return json.NewEncoder(w).Encode(m)
}

// LoadLogisticRegression reads learned parameters previously written by Output.
func LoadLogisticRegression(r io.Reader) (*LogisticRegression, error) {
	var m LogisticRegression
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "could not decode model parameters")
	}
	return &m, nil
}
