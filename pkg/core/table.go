package core

import (
	"fmt"
	"strconv"
)

// Row is a single table row. Cells line up with the table schema;
// a nil cell is a missing value.
type Row struct {
	ID    string
	Cells []any
}

// RowIDColumn names the column that carries row IDs when a table leaves
// memory, as a database table or as CSV, JSON or YAML records.
const RowIDColumn = "row_id"

// DefaultRowID returns the row ID assigned to the i-th row when none is given.
func DefaultRowID(i int) string {
	return "Row" + strconv.Itoa(i)
}

// Table is an in-memory, row-oriented table matching a schema.
// Tables are owned by the caller; nodes return new tables rather than
// mutating their input.
type Table struct {
	schema *Schema
	rows   []Row
	ids    map[string]struct{}
}

// NewTable creates an empty table with the given schema.
func NewTable(schema *Schema) *Table {
	if schema == nil {
		schema = MustSchema()
	}
	return &Table{
		schema: schema,
		ids:    make(map[string]struct{}),
	}
}

// Schema returns the table schema.
func (t *Table) Schema() *Schema {
	return t.schema
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns the i-th row. The returned cells must not be modified.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns all rows. The returned slice must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// AppendRow appends a row, validating arity, cell types and ID uniqueness.
// An empty id is replaced by DefaultRowID.
func (t *Table) AppendRow(id string, cells ...any) error {
	if len(cells) != t.schema.Len() {
		return fmt.Errorf("row has %d cells, schema has %d columns", len(cells), t.schema.Len())
	}
	if id == "" {
		id = DefaultRowID(len(t.rows))
	}
	if _, dup := t.ids[id]; dup {
		return fmt.Errorf("duplicate row ID %q", id)
	}
	for i, v := range cells {
		col := t.schema.Column(i)
		if !col.Type.Accepts(v) {
			return fmt.Errorf("row %q: column %q (%s) cannot hold %T", id, col.Name, col.Type, v)
		}
	}
	row := Row{ID: id, Cells: make([]any, len(cells))}
	copy(row.Cells, cells)
	t.rows = append(t.rows, row)
	t.ids[id] = struct{}{}
	return nil
}

// MustAppendRow is like AppendRow but panics on error.
// Intended for tests and static fixtures.
func (t *Table) MustAppendRow(id string, cells ...any) *Table {
	if err := t.AppendRow(id, cells...); err != nil {
		panic(err)
	}
	return t
}

// ColumnValues returns the cells of the named column in row order.
func (t *Table) ColumnValues(name string) ([]any, error) {
	idx := t.schema.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in table", name)
	}
	values := make([]any, len(t.rows))
	for i, r := range t.rows {
		values[i] = r.Cells[idx]
	}
	return values, nil
}

// WithColumn returns a new table with col appended and filled from values.
// The receiver is left untouched.
func (t *Table) WithColumn(col Column, values []any) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", col.Name, len(values), len(t.rows))
	}
	schema, err := t.schema.Append(col)
	if err != nil {
		return nil, err
	}
	out := NewTable(schema)
	out.rows = make([]Row, 0, len(t.rows))
	for i, r := range t.rows {
		cells := make([]any, 0, len(r.Cells)+1)
		cells = append(cells, r.Cells...)
		cells = append(cells, values[i])
		if err := out.AppendRow(r.ID, cells...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
