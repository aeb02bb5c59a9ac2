package report

import (
	"encoding/json"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats are the descriptive statistics for one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes statistics for every column whose present values
// are uniformly numeric. Columns with any non-numeric value, or with
// no values at all, are left out. Absent fields in a row do not
// disqualify a column; the count reflects present values only.
func Describe(t *Table) []ColumnStats {
	var all []ColumnStats
	for _, col := range t.Columns {
		var values []float64
		numericCol := true
		for _, rec := range t.Rows {
			v, ok := rec[col]
			if !ok {
				continue
			}
			f, ok := numeric(v)
			if !ok {
				numericCol = false
				break
			}
			values = append(values, f)
		}
		if !numericCol || len(values) == 0 {
			continue
		}
		all = append(all, describeColumn(col, values))
	}
	return all
}

func describeColumn(col string, values []float64) ColumnStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := ColumnStats{
		Column: col,
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    sorted[0],
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	// Sample standard deviation needs at least two values; keep the
	// zero so the JSON renderer never sees a NaN.
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
