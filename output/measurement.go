// Package output provides different formats of output for experiments.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
)

// MeasurementFormatter is used in a parity pipeline to output dataset
// measurements in various formats. These methods should not be used directly
// since there are some assumptions made about the inputs; for instance, the
// length of each argument.
type MeasurementFormatter func(datasets, headers []string, data [][]float64) (string, error)

// JsonMeasurementFormatter outputs measurements in a JSON format.
func JsonMeasurementFormatter(datasets, headers []string, data [][]float64) (string, error) {
	m := map[string]map[string]float64{}
	for j, d := range datasets {
		m[d] = map[string]float64{}
		for i, header := range headers {
			m[d][header] = data[i][j]
		}
	}

	v, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvMeasurementFormatter outputs measurements in CSV format.
func CsvMeasurementFormatter(datasets, headers []string, data [][]float64) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	h := []string{"Dataset"}
	h = append(h, headers...)
	if err := w.Write(h); err != nil {
		return "", err
	}
	for j := range datasets {
		record := make([]string, len(data)+1)
		record[0] = datasets[j]
		for i := range data {
			record[i+1] = strconv.FormatFloat(data[i][j], 'f', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), nil
}
