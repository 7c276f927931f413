package core

import (
	"fmt"
	"strings"
)

// DataType is the declared type tag of a column.
type DataType int

// Supported column data types.
const (
	// TypeUnknown is the zero value and never appears in a valid schema.
	TypeUnknown DataType = iota
	// TypeInt64 holds int64 cells.
	TypeInt64
	// TypeDouble holds float64 cells.
	TypeDouble
	// TypeBool holds bool cells.
	TypeBool
	// TypeString holds string cells.
	TypeString
	// TypeSMILES holds string cells carrying a SMILES molecule notation.
	// It is a logical type of its own and does not count as a string column.
	TypeSMILES
)

// String returns the string representation of the data type.
func (t DataType) String() string {
	switch t {
	case TypeInt64:
		return "int64"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeSMILES:
		return "smiles"
	default:
		return "unknown"
	}
}

// ParseDataType converts a type name to a DataType.
// Accepts the names produced by String plus a few common aliases.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int64", "int", "integer", "long":
		return TypeInt64, nil
	case "double", "float", "float64", "number":
		return TypeDouble, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "string", "str", "text":
		return TypeString, nil
	case "smiles":
		return TypeSMILES, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown data type %q (expected int64, double, bool, string or smiles)", s)
	}
}

// Accepts reports whether v is a valid cell for the type.
// nil is the missing value and is accepted by every type.
func (t DataType) Accepts(v any) bool {
	if v == nil {
		return true
	}
	switch t {
	case TypeInt64:
		_, ok := v.(int64)
		return ok
	case TypeDouble:
		_, ok := v.(float64)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeString, TypeSMILES:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler so schemas render by name.
func (t DataType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataType) UnmarshalText(b []byte) error {
	parsed, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
