package parity_test

import (
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/hscells/parity"
	"github.com/hscells/parity/analysis"
	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/eval"
	"github.com/hscells/parity/intervene"
	"github.com/hscells/parity/model"
	"github.com/hscells/parity/output"
	"github.com/hscells/parity/pipeline"
)

func TestPipeline(t *testing.T) {
	dir, err := ioutil.TempDir("", "parity_pipeline")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	p := parity.NewPipeline(
		dataset.SyntheticHiringSource{N: 400, Bias: 1.5, Seed: 7},
		parity.Scenarios(
			pipeline.Baseline(model.NewLogisticRegression(0.001, 10, 0, 42)),
			pipeline.Scenario{
				Name:       "reweigh",
				Model:      model.NewLogisticRegression(0.001, 10, 0, 42),
				Preprocess: []intervene.Preprocessor{intervene.Reweigh{}},
			},
		),
		parity.Measurement(
			analysis.SampleCount{},
			analysis.BaseRateDifference{},
		),
		parity.MeasurementOutput(output.JsonMeasurementFormatter),
		parity.Evaluation(
			eval.Accuracy,
			eval.DemographicParityDifference,
		),
		parity.EvaluationOutput(output.JsonEvaluationFormatter),
		parity.PlotOutput(dir),
	)
	p.Seed = 7

	executor, err := analysis.NewMemoryMeasurementExecutor(16)
	if err != nil {
		t.Fatal(err)
	}
	p.MeasurementExecutor = executor

	c := make(chan pipeline.Result)
	go p.Execute(c)

	var (
		measurements []string
		evaluations  []string
		predictions  int
		plots        int
		done         bool
	)
	for result := range c {
		switch result.Type {
		case pipeline.Measurement:
			measurements = result.Measurements
		case pipeline.Evaluation:
			evaluations = result.Evaluations
		case pipeline.Prediction:
			predictions++
			if result.Predictions.Len() != 120 {
				t.Errorf("scenario %s: expected 120 test predictions, got %d", result.Scenario, result.Predictions.Len())
			}
		case pipeline.Plot:
			plots++
		case pipeline.Error:
			t.Fatalf("scenario %s: %v", result.Scenario, result.Error)
		case pipeline.Done:
			done = true
		}
	}

	if !done {
		t.Fatal("pipeline did not complete")
	}
	if len(measurements) != 1 || !strings.Contains(measurements[0], "SampleCount") {
		t.Fatalf("unexpected measurements: %v", measurements)
	}
	if len(evaluations) != 1 || !strings.Contains(evaluations[0], "baseline") || !strings.Contains(evaluations[0], "reweigh") {
		t.Fatalf("unexpected evaluations: %v", evaluations)
	}
	if predictions != 2 {
		t.Fatalf("expected predictions from both scenarios, got %d", predictions)
	}
	// A selection rate and ROC plot per scenario plus the comparison plot.
	if plots != 5 {
		t.Fatalf("expected 5 plots, got %d", plots)
	}
}

func TestPipelineRequiresScenarios(t *testing.T) {
	p := parity.NewPipeline(dataset.SyntheticHiringSource{N: 10, Seed: 1})
	executor, err := analysis.NewMemoryMeasurementExecutor(16)
	if err != nil {
		t.Fatal(err)
	}
	p.MeasurementExecutor = executor

	c := make(chan pipeline.Result)
	go p.Execute(c)
	var failed bool
	for result := range c {
		if result.Type == pipeline.Error {
			failed = true
		}
	}
	if !failed {
		t.Fatal("expected a pipeline without scenarios to fail")
	}
}
