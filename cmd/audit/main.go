package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/parity/eval"
	"github.com/hscells/parity/output"
	"github.com/hscells/parity/stats"
)

var (
	name    = "audit"
	version = "12.Mar.2021"
	author  = "Harry Scells"
)

type args struct {
	Predictions string  `help:"csv of label,score,group rows to audit" arg:"-f,required"`
	Threshold   float64 `help:"classification threshold" arg:"-t"`
	Format      string  `help:"format of the output (json/csv)" arg:"-o"`
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
	args.Threshold = 0.5
	args.Format = "json"
	arg.MustParse(&args)

	p, err := load(args.Predictions, args.Threshold)
	if err != nil {
		panic(err)
	}

	scores := eval.Evaluate([]eval.Evaluator{
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
	}, p)

	var formatter output.EvaluationFormatter
	switch args.Format {
	case "json":
		formatter = output.JsonEvaluationFormatter
	case "csv":
		formatter = output.CsvEvaluationFormatter
	default:
		panic(errors.New("unrecognised format"))
	}

	o, err := formatter(map[string]map[string]float64{"audit": scores})
	if err != nil {
		panic(err)
	}

	_, err = os.Stdout.WriteString(o)
	if err != nil {
		panic(err)
	}
}

// load reads pre-computed model outputs: one label,score,group row per
// scored individual, with an optional header.
func load(file string, threshold float64) (stats.Predictions, error) {
	f, err := os.OpenFile(file, os.O_RDONLY, 0644)
	if err != nil {
		return stats.Predictions{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return stats.Predictions{}, err
	}
	if len(records) > 0 && records[0][0] == "label" {
		records = records[1:]
	}

	var p stats.Predictions
	for i, record := range records {
		if len(record) != 3 {
			return stats.Predictions{}, errors.Errorf("row %d does not contain label,score,group", i)
		}
		label, err := strconv.Atoi(record[0])
		if err != nil {
			return stats.Predictions{}, err
		}
		score, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return stats.Predictions{}, err
		}
		group, err := strconv.Atoi(record[2])
		if err != nil {
			return stats.Predictions{}, err
		}
		class := 0
		if score >= threshold {
			class = 1
		}
		p.Labels = append(p.Labels, label)
		p.Scores = append(p.Scores, score)
		p.Groups = append(p.Groups, group)
		p.Classes = append(p.Classes, class)
	}
	return p, nil
}
