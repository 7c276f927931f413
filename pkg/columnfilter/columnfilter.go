// Package columnfilter classifies columns into semantic kinds and resolves
// column parameters against a schema.
//
// All functions are pure. Default selection is total: when no column
// matches, callers get an explicit "no match" result instead of an index
// failure.
package columnfilter

import (
	"fmt"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// Kind is the semantic class of a column.
type Kind int

// Column kinds.
const (
	KindOther Kind = iota
	KindNumeric
	KindString
	KindChemistry
)

// String returns the kind name used in messages.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindChemistry:
		return "SMILES"
	default:
		return "other"
	}
}

// Classify maps a declared data type to its kind.
func Classify(t core.DataType) Kind {
	switch t {
	case core.TypeInt64, core.TypeDouble:
		return KindNumeric
	case core.TypeString:
		return KindString
	case core.TypeSMILES:
		return KindChemistry
	default:
		return KindOther
	}
}

// Predicate reports whether a column belongs to a class.
type Predicate func(core.Column) bool

// OfKind returns a predicate matching columns of kind k.
func OfKind(k Kind) Predicate {
	return func(c core.Column) bool {
		return Classify(c.Type) == k
	}
}

// Standard predicates.
var (
	IsNumeric = OfKind(KindNumeric)
	IsString  = OfKind(KindString)
	IsSMILES  = OfKind(KindChemistry)
)

// Any matches every column.
func Any(core.Column) bool { return true }

// Matching returns the columns of schema satisfying pred, in schema order.
func Matching(schema *core.Schema, pred Predicate) []core.Column {
	var out []core.Column
	for _, c := range schema.Columns() {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// LastMatching returns the last column satisfying pred.
// The boolean is false when no column matches.
func LastMatching(schema *core.Schema, pred Predicate) (core.Column, bool) {
	for i := schema.Len() - 1; i >= 0; i-- {
		if c := schema.Column(i); pred(c) {
			return c, true
		}
	}
	return core.Column{}, false
}

// Filter describes a named predicate, used in parameter declarations and error messages.
type Filter struct {
	Kind      Kind
	Predicate Predicate
}

// ForKind returns the Filter matching columns of kind k.
func ForKind(k Kind) Filter {
	return Filter{Kind: k, Predicate: OfKind(k)}
}

// Describe returns a short description such as "numeric column".
func (f Filter) Describe() string {
	if f.Kind == KindOther {
		return "column"
	}
	return f.Kind.String() + " column"
}

// Match applies the filter. A zero Filter matches every column.
func (f Filter) Match(c core.Column) bool {
	if f.Predicate == nil {
		return true
	}
	return f.Predicate(c)
}

// ResolveColumn resolves a single-column parameter.
//
// An empty current value selects the last column matching the filter. An
// explicit value must name an existing column satisfying the filter.
// Failures are returned as *core.ConfigurationError.
func ResolveColumn(schema *core.Schema, param, current string, f Filter) (string, error) {
	if current == "" {
		c, ok := LastMatching(schema, f.Match)
		if !ok {
			return "", &core.ConfigurationError{
				Parameter: param,
				Reason:    fmt.Sprintf("input table has no %s", f.Describe()),
			}
		}
		return c.Name, nil
	}
	return current, checkColumn(schema, param, current, f)
}

// ResolveColumns resolves a multi-column parameter.
//
// An empty current selection selects every matching column not listed in
// exclude. Explicit selections are validated column by column and must not
// contain duplicates.
func ResolveColumns(schema *core.Schema, param string, current []string, f Filter, exclude ...string) ([]string, error) {
	if len(current) == 0 {
		skip := make(map[string]struct{}, len(exclude))
		for _, e := range exclude {
			skip[e] = struct{}{}
		}
		var names []string
		for _, c := range Matching(schema, f.Match) {
			if _, ok := skip[c.Name]; !ok {
				names = append(names, c.Name)
			}
		}
		if len(names) == 0 {
			return nil, &core.ConfigurationError{
				Parameter: param,
				Reason:    fmt.Sprintf("input table has no %s to select", f.Describe()),
			}
		}
		return names, nil
	}

	seen := make(map[string]struct{}, len(current))
	for _, name := range current {
		if _, dup := seen[name]; dup {
			return nil, &core.ConfigurationError{
				Parameter: param,
				Reason:    fmt.Sprintf("column %q selected more than once", name),
			}
		}
		seen[name] = struct{}{}
		if err := checkColumn(schema, param, name, f); err != nil {
			return nil, err
		}
	}
	out := make([]string, len(current))
	copy(out, current)
	return out, nil
}

func checkColumn(schema *core.Schema, param, name string, f Filter) error {
	c, ok := schema.Lookup(name)
	if !ok {
		return &core.ConfigurationError{
			Parameter: param,
			Reason:    fmt.Sprintf("column %q not found in input table", name),
		}
	}
	if !f.Match(c) {
		return &core.ConfigurationError{
			Parameter: param,
			Reason:    fmt.Sprintf("column %q has type %s, expected a %s", name, c.Type, f.Describe()),
		}
	}
	return nil
}
