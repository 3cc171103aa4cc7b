package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// CSVSource is a source of datasets stored as flat CSV files. Parsing is
// driven by a schema: categorical feature columns are one-hot encoded, the
// protected attribute and label columns are binarised against the schema's
// privileged and favourable values, and rows with missing or malformed
// fields are skipped.
type CSVSource struct {
	schema Schema
}

// NewCSVSource creates a CSV dataset source for the specified schema.
func NewCSVSource(schema Schema) CSVSource {
	return CSVSource{schema: schema}
}

// Load reads a CSV file and parses it "as is" into a dataset.
func (c CSVSource) Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "could not open dataset %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	// Malformed rows are skipped below rather than failing the whole load.
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "could not parse dataset %s", path)
	}
	if len(records) == 0 {
		return Dataset{}, errors.Errorf("dataset %s contains no rows", path)
	}

	// Some exports of these datasets carry a header row and some do not.
	// If the first row repeats the schema, drop it.
	if strings.TrimSpace(records[0][0]) == c.schema.Columns[0] {
		records = records[1:]
	}

	col := make(map[string]int, len(c.schema.Columns))
	for i, name := range c.schema.Columns {
		col[name] = i
	}

	// First pass: drop malformed, missing-value, and unparseable rows, then
	// collect the distinct values of each categorical column for one-hot
	// encoding. Categories are only collected from rows that survive, so a
	// value confined to dropped rows never earns an indicator column.
	var rows [][]string
	values := make(map[string]sort.StringSlice)
	for _, record := range records {
		if len(record) != len(c.schema.Columns) {
			continue
		}
		ok := true
		for i, name := range c.schema.Columns {
			if len(c.schema.Missing) > 0 && strings.TrimSpace(record[i]) == c.schema.Missing {
				ok = false
				break
			}
			if name == c.schema.Protected || name == c.schema.Label || c.schema.Categorical[name] {
				continue
			}
			if _, err := strconv.ParseFloat(clean(record[i]), 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		rows = append(rows, record)
		for name := range c.schema.Categorical {
			values[name] = append(values[name], clean(record[col[name]]))
		}
	}
	if len(rows) == 0 {
		return Dataset{}, errors.Errorf("dataset %s contains no usable rows", path)
	}

	for name, vals := range values {
		sort.Sort(vals)
		n := set.Uniq(vals)
		values[name] = vals[:n]
	}

	// The encoded feature layout: numeric columns pass through, categorical
	// columns expand to one indicator feature per distinct value.
	var featureNames []string
	for _, name := range c.schema.Columns {
		if name == c.schema.Protected || name == c.schema.Label {
			continue
		}
		if c.schema.Categorical[name] {
			for _, v := range values[name] {
				featureNames = append(featureNames, fmt.Sprintf("%s=%s", name, v))
			}
		} else {
			featureNames = append(featureNames, name)
		}
	}

	x := make([][]float64, 0, len(rows))
	protected := make([]int, 0, len(rows))
	labels := make([]int, 0, len(rows))
	for _, record := range rows {
		row := make([]float64, 0, len(featureNames))
		for _, name := range c.schema.Columns {
			if name == c.schema.Protected || name == c.schema.Label {
				continue
			}
			if c.schema.Categorical[name] {
				v := clean(record[col[name]])
				for _, u := range values[name] {
					if u == v {
						row = append(row, 1)
					} else {
						row = append(row, 0)
					}
				}
			} else {
				// Numeric fields were validated in the first pass.
				v, _ := strconv.ParseFloat(clean(record[col[name]]), 64)
				row = append(row, v)
			}
		}
		x = append(x, row)
		protected = append(protected, indicator(clean(record[col[c.schema.Protected]]), c.schema.Privileged))
		labels = append(labels, indicator(clean(record[col[c.schema.Label]]), c.schema.Favourable))
	}

	d := New(c.schema.Name, featureNames, x, protected, labels)
	return d, d.Validate()
}

// clean normalises a raw CSV field. The income dataset's test split suffixes
// labels with a full stop, which would otherwise split ">50K" into two values.
func clean(field string) string {
	return strings.TrimSuffix(strings.TrimSpace(field), ".")
}

func indicator(value, reference string) int {
	if value == reference {
		return 1
	}
	return 0
}
