package core

import (
	"fmt"
	"strings"
)

// Column is a named, typed column of a schema.
type Column struct {
	Name string   `json:"name" yaml:"name"`
	Type DataType `json:"type" yaml:"type"`
}

// NewColumn creates a column.
func NewColumn(t DataType, name string) Column {
	return Column{Name: name, Type: t}
}

// String returns "name (type)".
func (c Column) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Type)
}

// Schema is an ordered sequence of columns with unique names.
// A Schema is immutable; Append returns a new schema.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema creates a schema from the given columns.
// Returns an error if a name is empty, duplicated, or a type is unknown.
func NewSchema(cols ...Column) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if err := s.add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Intended for static schemas and tests.
func MustSchema(cols ...Column) *Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) add(c Column) error {
	if c.Name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if c.Type == TypeUnknown {
		return fmt.Errorf("column %q has unknown type", c.Name)
	}
	if _, exists := s.index[c.Name]; exists {
		return fmt.Errorf("duplicate column name %q", c.Name)
	}
	s.index[c.Name] = len(s.columns)
	s.columns = append(s.columns, c)
	return nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.columns)
}

// Column returns the column at position i.
func (s *Schema) Column(i int) Column {
	return s.columns[i]
}

// Columns returns a copy of the columns in order.
func (s *Schema) Columns() []Column {
	if s == nil {
		return nil
	}
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s *Schema) Index(name string) int {
	if s == nil {
		return -1
	}
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Lookup returns the named column.
func (s *Schema) Lookup(name string) (Column, bool) {
	i := s.Index(name)
	if i < 0 {
		return Column{}, false
	}
	return s.columns[i], true
}

// Append returns a new schema with cols added after the existing columns.
func (s *Schema) Append(cols ...Column) (*Schema, error) {
	all := make([]Column, 0, s.Len()+len(cols))
	all = append(all, s.Columns()...)
	all = append(all, cols...)
	return NewSchema(all...)
}

// Equal reports whether both schemas have the same column names and types in the same order.
func (s *Schema) Equal(other *Schema) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.Len() {
		if s.columns[i] != other.columns[i] {
			return false
		}
	}
	return true
}

// String renders the schema as "[a (int64), b (string)]".
func (s *Schema) String() string {
	parts := make([]string, s.Len())
	for i := range s.Len() {
		parts[i] = s.columns[i].String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
