package output_test

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"testing"

	"github.com/hscells/parity/output"
	"github.com/hscells/parity/stats"
)

func TestMetricComparisonPlot(t *testing.T) {
	spec := output.MetricComparisonPlot("comparison", map[string]map[string]float64{
		"baseline": {"Accuracy": 0.8, "DisparateImpact": 0.6},
		"reweigh":  {"Accuracy": 0.75, "DisparateImpact": 0.9},
	})
	if spec.Mark != "bar" {
		t.Fatalf("expected a bar mark, got %s", spec.Mark)
	}
	if len(spec.Data.Values) != 4 {
		t.Fatalf("expected 4 data values, got %d", len(spec.Data.Values))
	}
	if spec.Data.Values[0]["scenario"] != "baseline" {
		t.Fatalf("expected sorted scenarios, got %v", spec.Data.Values[0])
	}
}

func TestSelectionRatePlot(t *testing.T) {
	spec := output.SelectionRatePlot("rates", stats.Predictions{
		Classes: []int{1, 0, 1, 1},
		Labels:  []int{1, 0, 0, 1},
		Groups:  []int{0, 0, 1, 1},
	})
	if len(spec.Data.Values) != 2 {
		t.Fatalf("expected one value per group, got %d", len(spec.Data.Values))
	}
	if spec.Data.Values[0]["rate"].(float64) != 0.5 {
		t.Fatalf("unexpected unprivileged selection rate %v", spec.Data.Values[0]["rate"])
	}
}

func TestRocCurvePlot(t *testing.T) {
	spec := output.RocCurvePlot("roc", stats.Predictions{
		Classes: []int{0, 1, 0, 1},
		Scores:  []float64{0.1, 0.9, 0.2, 0.8},
		Labels:  []int{0, 1, 0, 1},
		Groups:  []int{0, 0, 1, 1},
	})
	if spec.Mark != "line" {
		t.Fatalf("expected a line mark, got %s", spec.Mark)
	}
	groups := make(map[string]bool)
	for _, v := range spec.Data.Values {
		groups[v["group"].(string)] = true
		tpr := v["tpr"].(float64)
		fpr := v["fpr"].(float64)
		if tpr < 0 || tpr > 1 || fpr < 0 || fpr > 1 {
			t.Fatalf("rates out of range: %v", v)
		}
	}
	if !groups["unprivileged"] || !groups["privileged"] {
		t.Fatalf("expected a curve for each group, got %v", groups)
	}
}

func TestRocCurvePlotWithoutScores(t *testing.T) {
	spec := output.RocCurvePlot("roc", stats.Predictions{
		Classes: []int{1, 0},
		Labels:  []int{1, 0},
		Groups:  []int{0, 1},
	})
	if len(spec.Data.Values) != 0 {
		t.Fatalf("expected no curves without scores, got %d values", len(spec.Data.Values))
	}
}

func TestPlotsWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "parity_plots")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	spec := output.MetricComparisonPlot("comparison", map[string]map[string]float64{
		"baseline": {"Accuracy": 0.8},
	})
	file, err := output.Plots{Dir: dir}.Write("comparison", spec)
	if err != nil {
		t.Fatal(err)
	}

	b, err := ioutil.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var read output.PlotSpec
	if err := json.Unmarshal(b, &read); err != nil {
		t.Fatal(err)
	}
	if read.Title != "comparison" {
		t.Fatalf("unexpected title %s", read.Title)
	}
}

func TestPlotsWriteWithoutDir(t *testing.T) {
	if _, err := (output.Plots{}).Write("x", output.PlotSpec{}); err == nil {
		t.Fatal("expected writing without a directory to fail")
	}
}
