package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
)

// EvaluationFormatter is used in a parity pipeline to output evaluation
// results. The outer map is keyed by experiment scenario, the inner map by
// evaluation measure.
type EvaluationFormatter func(map[string]map[string]float64) (string, error)

// JsonEvaluationFormatter outputs evaluation results in a JSON format.
func JsonEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	v, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs evaluation results in CSV format, one row
// per scenario with measures in sorted column order.
func CsvEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	var scenarios []string
	measures := map[string]bool{}
	for scenario, scores := range results {
		scenarios = append(scenarios, scenario)
		for measure := range scores {
			measures[measure] = true
		}
	}
	sort.Strings(scenarios)

	var headers []string
	for measure := range measures {
		headers = append(headers, measure)
	}
	sort.Strings(headers)

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	if err := w.Write(append([]string{"Scenario"}, headers...)); err != nil {
		return "", err
	}
	for _, scenario := range scenarios {
		record := make([]string, len(headers)+1)
		record[0] = scenario
		for i, measure := range headers {
			record[i+1] = strconv.FormatFloat(results[scenario][measure], 'f', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), nil
}
