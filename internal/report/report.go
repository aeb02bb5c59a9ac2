package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/scorecard/internal/result"
)

// Table is the tabular view of a result set: columns are the union of
// all field names, rows are the records. Rows may be ragged; a record
// without a column's field renders as an empty cell.
type Table struct {
	Columns []string
	Rows    result.ResultSet
}

// Build assembles the table. Columns appear in first-seen order across
// the set, sorted within each record so the layout is deterministic.
func Build(set result.ResultSet) *Table {
	t := &Table{Rows: set}
	seen := make(map[string]bool)
	for _, rec := range set {
		var fresh []string
		for k := range rec {
			if !seen[k] {
				fresh = append(fresh, k)
			}
		}
		sort.Strings(fresh)
		for _, k := range fresh {
			seen[k] = true
			t.Columns = append(t.Columns, k)
		}
	}
	return t
}

// Cell returns the rendered value of one cell. Absent fields render
// empty; nested score structures render as compact JSON.
func (t *Table) Cell(row int, column string) string {
	v, ok := t.Rows[row][column]
	if !ok {
		return ""
	}
	return formatValue(v)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

// Generate renders the aggregated records and their descriptive
// statistics in the requested format.
func Generate(set result.ResultSet, format string, w io.Writer) error {
	t := Build(set)
	stats := Describe(t)

	switch format {
	case "markdown":
		return writeMarkdown(t, stats, w)
	case "json":
		return writeJSON(t, stats, w)
	default:
		return writeTable(t, stats, w)
	}
}

func writeTable(t *Table, stats []ColumnStats, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for i := range t.Rows {
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = t.Cell(i, col)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSummary statistics:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tCOUNT\tMEAN\tSTD\tMIN\t25%\t50%\t75%\tMAX")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max)
	}
	return tw.Flush()
}

func writeMarkdown(t *Table, stats []ColumnStats, w io.Writer) error {
	fmt.Fprintf(w, "| %s |\n", strings.Join(t.Columns, " | "))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("---|", len(t.Columns)))
	for i := range t.Rows {
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = t.Cell(i, col)
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}

	fmt.Fprintln(w, "\n| Column | Count | Mean | Std | Min | 25% | 50% | 75% | Max |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|---|---|")
	for _, s := range stats {
		fmt.Fprintf(w, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max)
	}
	return nil
}

func writeJSON(t *Table, stats []ColumnStats, w io.Writer) error {
	out := struct {
		Columns    []string         `json:"columns"`
		Records    result.ResultSet `json:"records"`
		Statistics []ColumnStats    `json:"statistics"`
	}{t.Columns, t.Rows, stats}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
