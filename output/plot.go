package output

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"sort"

	"github.com/hscells/parity/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// PlotSpec is a vega-lite flavoured plot specification, exported as JSON for
// the documentation site's plotting component to render.
type PlotSpec struct {
	Title    string               `json:"title,omitempty"`
	Mark     string               `json:"mark"`
	Data     PlotData             `json:"data"`
	Encoding map[string]PlotField `json:"encoding"`
}

// PlotData holds the inline data values of a plot.
type PlotData struct {
	Values []map[string]interface{} `json:"values"`
}

// PlotField describes how one visual channel is encoded.
type PlotField struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// MetricComparisonPlot builds a grouped bar chart comparing each evaluation
// measure across experiment scenarios.
func MetricComparisonPlot(title string, results map[string]map[string]float64) PlotSpec {
	var scenarios []string
	for scenario := range results {
		scenarios = append(scenarios, scenario)
	}
	sort.Strings(scenarios)

	var values []map[string]interface{}
	for _, scenario := range scenarios {
		var measures []string
		for measure := range results[scenario] {
			measures = append(measures, measure)
		}
		sort.Strings(measures)
		for _, measure := range measures {
			values = append(values, map[string]interface{}{
				"scenario": scenario,
				"measure":  measure,
				"value":    results[scenario][measure],
			})
		}
	}

	return PlotSpec{
		Title: title,
		Mark:  "bar",
		Data:  PlotData{Values: values},
		Encoding: map[string]PlotField{
			"x":     {Field: "measure", Type: "nominal", Title: "Measure"},
			"y":     {Field: "value", Type: "quantitative", Title: "Score"},
			"color": {Field: "scenario", Type: "nominal", Title: "Scenario"},
		},
	}
}

// SelectionRatePlot builds a bar chart of per-group selection rates for a
// single scenario's predictions.
func SelectionRatePlot(title string, p stats.Predictions) PlotSpec {
	m := stats.GroupConfusion(p)
	return PlotSpec{
		Title: title,
		Mark:  "bar",
		Data: PlotData{Values: []map[string]interface{}{
			{"group": "unprivileged", "rate": m[0].SelectionRate()},
			{"group": "privileged", "rate": m[1].SelectionRate()},
		}},
		Encoding: map[string]PlotField{
			"x": {Field: "group", Type: "nominal", Title: "Group"},
			"y": {Field: "rate", Type: "quantitative", Title: "Selection rate"},
		},
	}
}

// RocCurvePlot builds a per-group ROC line chart from classifier scores.
// Groups with no scored predictions are left off the plot.
func RocCurvePlot(title string, p stats.Predictions) PlotSpec {
	var values []map[string]interface{}
	for g, name := range []string{"unprivileged", "privileged"} {
		q := p.Group(g)
		if len(q.Scores) == 0 {
			continue
		}
		s := rocPoints{
			scores:  append([]float64{}, q.Scores...),
			classes: make([]bool, len(q.Labels)),
		}
		for i, label := range q.Labels {
			s.classes[i] = label == 1
		}
		sort.Sort(s)
		tpr, fpr, _ := stat.ROC(nil, s.scores, s.classes, nil)
		for i := range tpr {
			values = append(values, map[string]interface{}{
				"group": name,
				"fpr":   fpr[i],
				"tpr":   tpr[i],
			})
		}
	}
	return PlotSpec{
		Title: title,
		Mark:  "line",
		Data:  PlotData{Values: values},
		Encoding: map[string]PlotField{
			"x":     {Field: "fpr", Type: "quantitative", Title: "False positive rate"},
			"y":     {Field: "tpr", Type: "quantitative", Title: "True positive rate"},
			"color": {Field: "group", Type: "nominal", Title: "Group"},
		},
	}
}

type rocPoints struct {
	scores  []float64
	classes []bool
}

func (s rocPoints) Len() int { return len(s.scores) }

func (s rocPoints) Less(i, j int) bool { return s.scores[i] < s.scores[j] }

func (s rocPoints) Swap(i, j int) {
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
	s.classes[i], s.classes[j] = s.classes[j], s.classes[i]
}

// Plots writes plot specifications into a directory, one JSON file per plot.
type Plots struct {
	Dir string
}

// Write marshals a plot spec to <dir>/<name>.json.
func (p Plots) Write(name string, spec PlotSpec) (string, error) {
	if len(p.Dir) == 0 {
		return "", errors.New("no plot output directory configured")
	}
	if err := os.MkdirAll(p.Dir, 0777); err != nil {
		return "", errors.Wrap(err, "could not create plot directory")
	}
	b, err := json.MarshalIndent(spec, "", "    ")
	if err != nil {
		return "", err
	}
	file := path.Join(p.Dir, name+".json")
	if err := ioutil.WriteFile(file, b, 0664); err != nil {
		return "", errors.Wrapf(err, "could not write plot %s", file)
	}
	return file, nil
}
