package core

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned (wrapped) when execution stops because the user
// canceled it. Check with errors.Is.
var ErrCanceled = errors.New("execution canceled")

// ConfigurationError is returned by Configure when the input schema or the
// node parameters cannot produce a valid output schema.
type ConfigurationError struct {
	Node      string
	Parameter string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Node != "" && e.Parameter != "":
		return fmt.Sprintf("configure %s: parameter %q: %s", e.Node, e.Parameter, e.Reason)
	case e.Node != "":
		return fmt.Sprintf("configure %s: %s", e.Node, e.Reason)
	case e.Parameter != "":
		return fmt.Sprintf("parameter %q: %s", e.Parameter, e.Reason)
	default:
		return e.Reason
	}
}

// ComputationError is returned by Execute when the node's computation fails.
// Row is -1 when the failure is not tied to a single row.
type ComputationError struct {
	Node  string
	Row   int
	RowID string
	Err   error
}

func (e *ComputationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("execute %s: row %d (%s): %v", e.Node, e.Row, e.RowID, e.Err)
	}
	return fmt.Sprintf("execute %s: %v", e.Node, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError is returned by the host when the table produced by
// Execute does not match the schema promised by Configure.
type SchemaMismatchError struct {
	Node     string
	Declared *Schema
	Actual   *Schema
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("node %s: executed table schema %s does not match configured schema %s",
		e.Node, e.Actual, e.Declared)
}

// IsCanceled reports whether err signals user cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
