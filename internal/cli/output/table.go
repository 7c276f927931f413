package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// RowIDColumn is the header of the row ID column.
const RowIDColumn = core.RowIDColumn

// Table renders a data table in the effective mode.
func (r *Renderer) Table(t *core.Table) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(TableRecords(t))
	case ModeYAML:
		return r.YAML(TableRecords(t))
	}

	names := t.Schema().Names()
	header := make(table.Row, 0, len(names)+1)
	header = append(header, RowIDColumn)
	for _, n := range names {
		header = append(header, n)
	}

	tw := newTableWriter(r)
	tw.AppendHeader(header)
	for _, row := range t.Rows() {
		cells := make(table.Row, 0, len(row.Cells)+1)
		cells = append(cells, row.ID)
		for _, c := range row.Cells {
			cells = append(cells, FormatCell(c))
		}
		tw.AppendRow(cells)
	}

	switch r.EffectiveMode() {
	case ModeCSV:
		tw.RenderCSV()
	case ModeMarkdown:
		tw.RenderMarkdown()
		r.Println("")
		r.Printf("(%d rows)\n", t.NumRows())
	default:
		tw.Render()
		r.Println(r.Muted(fmt.Sprintf("(%d rows)", t.NumRows())))
	}
	return nil
}

// Grid renders rows of preformatted cells with go-pretty in text, markdown
// or CSV mode.
func (r *Renderer) Grid(header []string, rows [][]string) {
	tw := newTableWriter(r)

	h := make(table.Row, len(header))
	for i, v := range header {
		h[i] = v
	}
	tw.AppendHeader(h)
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, v := range row {
			cells[i] = v
		}
		tw.AppendRow(cells)
	}

	switch r.EffectiveMode() {
	case ModeCSV:
		tw.RenderCSV()
	case ModeMarkdown:
		tw.RenderMarkdown()
	default:
		tw.Render()
	}
}

// newTableWriter returns a light-style writer that keeps header names as
// given, since they are column names.
func newTableWriter(r *Renderer) table.Writer {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(style)
	return tw
}

// TableRecords converts a table to one map per row, keyed by column name,
// with the row ID under RowIDColumn. Non-finite doubles become the strings
// "NaN", "+Inf" and "-Inf" so the records always encode as JSON.
func TableRecords(t *core.Table) []map[string]any {
	names := t.Schema().Names()
	records := make([]map[string]any, 0, t.NumRows())
	for _, row := range t.Rows() {
		rec := make(map[string]any, len(names)+1)
		rec[RowIDColumn] = row.ID
		for i, n := range names {
			rec[n] = recordValue(row.Cells[i])
		}
		records = append(records, rec)
	}
	return records
}

func recordValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v
}

// FormatCell formats a cell for text output. Missing cells print as "?".
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "?"
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
