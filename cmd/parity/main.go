package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path"

	"github.com/alexflint/go-arg"
	"github.com/hscells/parity"
	"github.com/hscells/parity/analysis"
	"github.com/hscells/parity/eval"
	"github.com/hscells/parity/model"
	"github.com/hscells/parity/output"
	"github.com/hscells/parity/pipeline"
)

var (
	name    = "parity"
	version = "12.Mar.2021"
	author  = "Harry Scells"
)

type args struct {
	Config string `help:"path to experiment properties file" arg:"-c,required"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

func main() {
	var args args
	arg.MustParse(&args)

	c := loadConfig(args.Config)

	scenarios := parity.Interventions(c.lr, c.epochs, c.l2, c.seed, c.eta)
	for _, scenario := range scenarios {
		if m, ok := scenario.Model.(*model.LogisticRegression); ok {
			m.Verbose = c.verbose
		}
	}

	p := parity.NewPipeline(
		c.source,
		parity.Scenarios(scenarios...),
		parity.Measurement(
			analysis.SampleCount{},
			analysis.GroupBalance{},
			analysis.BaseRateDifference{},
			analysis.LabelDisparateImpact{},
		),
		parity.MeasurementOutput(
			output.JsonMeasurementFormatter,
			output.CsvMeasurementFormatter,
		),
		parity.Evaluation(
			eval.Accuracy,
			eval.Precision,
			eval.Recall,
			eval.F1Measure,
			eval.AUC,
			eval.DemographicParityDifference,
			eval.DisparateImpact,
			eval.FalsePositiveRateDifference,
			eval.FalseNegativeRateDifference,
			eval.EqualizedOddsDifference,
			eval.AverageOddsDifference,
		),
		parity.EvaluationOutput(
			output.JsonEvaluationFormatter,
			output.CsvEvaluationFormatter,
		),
		parity.PlotOutput(c.plotsDir),
	)
	p.DatasetPath = c.path
	p.TestFraction = c.testFraction
	p.Seed = c.seed
	p.Threshold = c.threshold
	p.ModelOutput = c.modelOutput

	ch := make(chan pipeline.Result)
	go p.Execute(ch)
	for result := range ch {
		switch result.Type {
		case pipeline.Measurement:
			if err := write(c.outputDir, "measurements", result.Measurements, "json", "csv"); err != nil {
				log.Fatalln(err)
			}
		case pipeline.Evaluation:
			// The first formatter is JSON; echo it so the scalar metrics are
			// printed alongside the exported files.
			fmt.Println(result.Evaluations[0])
			if err := write(c.outputDir, "evaluations", result.Evaluations, "json", "csv"); err != nil {
				log.Fatalln(err)
			}
		case pipeline.Plot:
			log.Printf("wrote plot %s\n", result.Plot)
		case pipeline.Error:
			log.Fatalf("scenario %s: %v", result.Scenario, result.Error)
		}
	}
}

// write pairs formatter outputs with their file extensions. The extensions
// must match the order the formatters were registered with the pipeline.
func write(dir, stem string, outputs []string, extensions ...string) error {
	if len(outputs) != len(extensions) {
		return fmt.Errorf("%d formatter outputs for %d extensions", len(outputs), len(extensions))
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	for i, o := range outputs {
		file := path.Join(dir, fmt.Sprintf("%s.%s", stem, extensions[i]))
		if err := ioutil.WriteFile(file, []byte(o), 0664); err != nil {
			return err
		}
	}
	return nil
}
