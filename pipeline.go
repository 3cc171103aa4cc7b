// Package parity provides a framework for constructing reproducible
// algorithmic-fairness experiments over tabular classification datasets.
package parity

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/hscells/parity/analysis"
	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/eval"
	"github.com/hscells/parity/intervene"
	"github.com/hscells/parity/model"
	"github.com/hscells/parity/output"
	"github.com/hscells/parity/pipeline"
	"github.com/hscells/parity/stats"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// Pipeline contains all the information for executing a fairness experiment.
type Pipeline struct {
	DatasetPath  string
	Source       dataset.Source
	TestFraction float64
	Seed         int64
	// Threshold is the default classification threshold; 0 means 0.5.
	Threshold float64

	Scenarios             []pipeline.Scenario
	Measurements          []analysis.Measurement
	MeasurementFormatters []output.MeasurementFormatter
	MeasurementExecutor   analysis.MeasurementExecutor
	Evaluations           []eval.Evaluator
	EvaluationFormatters  []output.EvaluationFormatter
	Statistics            stats.StatisticsSource
	Plots                 output.Plots
	// ModelOutput is the path the baseline scenario's learned parameters are
	// written to, when non-empty.
	ModelOutput string
}

// Scenarios adds experiment scenarios to the pipeline.
func Scenarios(scenarios ...pipeline.Scenario) func() interface{} {
	return func() interface{} {
		return scenarios
	}
}

// Measurement adds dataset measurements to the pipeline.
func Measurement(measurements ...analysis.Measurement) func() interface{} {
	return func() interface{} {
		return measurements
	}
}

// MeasurementOutput adds measurement formatters to the pipeline.
func MeasurementOutput(formatter ...output.MeasurementFormatter) func() interface{} {
	return func() interface{} {
		return formatter
	}
}

// Evaluation adds evaluation measures to the pipeline.
func Evaluation(measures ...eval.Evaluator) func() interface{} {
	return func() interface{} {
		return measures
	}
}

// EvaluationOutput adds evaluation formatters to the pipeline.
func EvaluationOutput(formatters ...output.EvaluationFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// PlotOutput configures the directory plot specifications are exported to.
func PlotOutput(dir string) func() interface{} {
	return func() interface{} {
		return output.Plots{Dir: dir}
	}
}

// NewPipeline creates a new parity pipeline. The dataset source is required.
// Additional components are provided via the optional functional arguments.
func NewPipeline(source dataset.Source, components ...func() interface{}) Pipeline {
	p := Pipeline{
		Source:       source,
		TestFraction: 0.3,
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case []pipeline.Scenario:
			p.Scenarios = v
		case []analysis.Measurement:
			p.Measurements = v
		case []output.MeasurementFormatter:
			p.MeasurementFormatters = v
		case []eval.Evaluator:
			p.Evaluations = v
		case []output.EvaluationFormatter:
			p.EvaluationFormatters = v
		case output.Plots:
			p.Plots = v
		}
	}

	return p
}

// Execute runs a parity pipeline for a particular dataset.
func (p Pipeline) Execute(c chan pipeline.Result) {
	defer close(c)
	log.Println("starting parity pipeline...")

	run := uuid.New().String()
	log.Printf("run %s\n", run)

	if p.Statistics == nil {
		p.Statistics = stats.NewDatasetStatisticsSource()
	}
	if p.Threshold == 0 {
		p.Threshold = 0.5
	}

	// Configure the measurement cache.
	if p.MeasurementExecutor.Empty() {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			c <- pipeline.Result{Error: err, Type: pipeline.Error}
			return
		}
		p.MeasurementExecutor = analysis.NewDiskMeasurementExecutor(diskv.New(diskv.Options{
			BasePath:     path.Join(cacheDir, "parity", "measurement_cache"),
			Transform:    analysis.BlockTransform(8),
			CacheSizeMax: 4096 * 1024,
		}))
	}

	log.Println("loading dataset...")
	d, err := p.Source.Load(p.DatasetPath)
	if err != nil {
		c <- pipeline.Result{Error: err, Type: pipeline.Error}
		return
	}
	if err := d.Validate(); err != nil {
		c <- pipeline.Result{Error: err, Type: pipeline.Error}
		return
	}

	// Only perform the measurements if there are some measurement formatters
	// to output them to.
	if len(p.Measurements) > 0 && len(p.MeasurementFormatters) > 0 {
		headers := make([]string, len(p.Measurements))
		for i, measurement := range p.Measurements {
			headers[i] = measurement.Name()
		}
		results, err := p.MeasurementExecutor.Execute(d, p.Statistics, p.Measurements...)
		if err != nil {
			c <- pipeline.Result{Error: err, Type: pipeline.Error}
			return
		}
		data := make([][]float64, len(results))
		for i, v := range results {
			data[i] = []float64{v}
		}
		outputs := make([]string, len(p.MeasurementFormatters))
		for i, formatter := range p.MeasurementFormatters {
			outputs[i], err = formatter([]string{d.Name}, headers, data)
			if err != nil {
				c <- pipeline.Result{Error: err, Type: pipeline.Error}
				return
			}
		}
		c <- pipeline.Result{Measurements: outputs, Type: pipeline.Measurement}
	}

	if len(p.Scenarios) == 0 {
		c <- pipeline.Result{Error: errors.New("a pipeline requires at least one scenario"), Type: pipeline.Error}
		return
	}

	log.Println("splitting dataset...")
	train, test := dataset.Split(d, p.TestFraction, p.Seed)

	evaluations := make(map[string]map[string]float64)
	for _, scenario := range p.Scenarios {
		log.Printf("starting scenario %s\n", scenario.Name)

		preds, m, err := p.runScenario(scenario, train, test)
		if err != nil {
			c <- pipeline.Result{Scenario: scenario.Name, Error: err, Type: pipeline.Error}
			return
		}

		if scenario.Name == "baseline" && len(p.ModelOutput) > 0 {
			if err := writeModel(m, p.ModelOutput); err != nil {
				c <- pipeline.Result{Scenario: scenario.Name, Error: err, Type: pipeline.Error}
				return
			}
		}

		if len(p.Evaluations) > 0 {
			evaluations[scenario.Name] = eval.Evaluate(p.Evaluations, preds)
		}

		c <- pipeline.Result{Scenario: scenario.Name, Predictions: &preds, Type: pipeline.Prediction}

		if len(p.Plots.Dir) > 0 {
			file, err := p.Plots.Write(
				fmt.Sprintf("%s_%s_selection", d.Name, scenario.Name),
				output.SelectionRatePlot(fmt.Sprintf("%s selection rates (%s)", d.Name, scenario.Name), preds))
			if err != nil {
				c <- pipeline.Result{Scenario: scenario.Name, Error: err, Type: pipeline.Error}
				return
			}
			c <- pipeline.Result{Scenario: scenario.Name, Plot: file, Type: pipeline.Plot}

			file, err = p.Plots.Write(
				fmt.Sprintf("%s_%s_roc", d.Name, scenario.Name),
				output.RocCurvePlot(fmt.Sprintf("%s ROC (%s)", d.Name, scenario.Name), preds))
			if err != nil {
				c <- pipeline.Result{Scenario: scenario.Name, Error: err, Type: pipeline.Error}
				return
			}
			c <- pipeline.Result{Scenario: scenario.Name, Plot: file, Type: pipeline.Plot}
		}

		log.Printf("completed scenario %s\n", scenario.Name)
	}

	if len(p.EvaluationFormatters) > 0 {
		outputs := make([]string, len(p.EvaluationFormatters))
		for i, formatter := range p.EvaluationFormatters {
			outputs[i], err = formatter(evaluations)
			if err != nil {
				c <- pipeline.Result{Error: err, Type: pipeline.Error}
				return
			}
		}
		c <- pipeline.Result{Evaluations: outputs, Type: pipeline.Evaluation}
	}

	if len(p.Plots.Dir) > 0 && len(evaluations) > 0 {
		file, err := p.Plots.Write(d.Name+"_comparison", output.MetricComparisonPlot(d.Name+" intervention comparison", evaluations))
		if err != nil {
			c <- pipeline.Result{Error: err, Type: pipeline.Error}
			return
		}
		c <- pipeline.Result{Plot: file, Type: pipeline.Plot}
	}

	c <- pipeline.Result{Type: pipeline.Done}
}

// runScenario trains and scores one scenario: pre-processing, training,
// scoring, thresholding, then post-processing.
func (p Pipeline) runScenario(scenario pipeline.Scenario, train, test dataset.Dataset) (stats.Predictions, model.Classifier, error) {
	d := train
	for _, pre := range scenario.Preprocess {
		var err error
		d, err = pre.Apply(d)
		if err != nil {
			return stats.Predictions{}, nil, errors.Wrapf(err, "could not apply %s", pre.Name())
		}
	}

	m := scenario.Model
	if m == nil {
		return stats.Predictions{}, nil, errors.New("scenario has no model")
	}
	if err := m.Train(d); err != nil {
		return stats.Predictions{}, nil, errors.Wrap(err, "could not train model")
	}

	scores, err := m.PredictProba(test.X)
	if err != nil {
		return stats.Predictions{}, nil, errors.Wrap(err, "could not score test set")
	}

	threshold := p.Threshold
	if scenario.Threshold != 0 {
		threshold = scenario.Threshold
	}
	preds := stats.Predictions{
		Classes: model.Predict(scores, threshold),
		Scores:  scores,
		Labels:  test.Labels,
		Groups:  test.Protected,
	}

	for _, post := range scenario.PostProcess {
		preds, err = post.Apply(preds)
		if err != nil {
			return stats.Predictions{}, nil, errors.Wrapf(err, "could not apply %s", post.Name())
		}
	}
	return preds, m, nil
}

func writeModel(m model.Classifier, file string) error {
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
	if err != nil {
		return errors.Wrapf(err, "could not create model output %s", file)
	}
	defer f.Close()
	return m.Output(f)
}

// Interventions is a helper constructing the conventional scenario matrix the
// experiments in this repository compare: a baseline plus one scenario per
// intervention, every scenario training the same kind of model.
func Interventions(lr float64, epochs int, l2 float64, seed int64, eta float64) []pipeline.Scenario {
	return []pipeline.Scenario{
		pipeline.Baseline(model.NewLogisticRegression(lr, epochs, l2, seed)),
		{
			Name:       "reweigh",
			Model:      model.NewLogisticRegression(lr, epochs, l2, seed),
			Preprocess: []intervene.Preprocessor{intervene.Reweigh{}},
		},
		{
			Name:       "repair",
			Model:      model.NewLogisticRegression(lr, epochs, l2, seed),
			Preprocess: []intervene.Preprocessor{intervene.DisparateImpactRemover{RepairLevel: 1}},
		},
		{
			Name:  "prejudice_remover",
			Model: model.NewPrejudiceRemover(eta, lr, epochs, l2, seed),
		},
		{
			Name:        "threshold",
			Model:       model.NewLogisticRegression(lr, epochs, l2, seed),
			PostProcess: []intervene.PostProcessor{intervene.ThresholdCalibrator{}},
		},
		{
			Name:        "reject_option",
			Model:       model.NewLogisticRegression(lr, epochs, l2, seed),
			PostProcess: []intervene.PostProcessor{intervene.RejectOption{Low: 0.4, High: 0.6}},
		},
	}
}
