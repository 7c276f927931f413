package node

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// RowFunc is applied to one row. i is the row position.
type RowFunc func(i int, row core.Row) error

// ForEachRow calls fn for each row of t, checking for cancellation before
// every row and reporting progress along the way.
//
// A cancellation error is returned as is; any error from fn stops the loop
// and is returned unchanged.
func ForEachRow(ec *core.ExecutionContext, t *core.Table, fn RowFunc) error {
	n := t.NumRows()
	step := progressStep(n)
	for i := range n {
		if err := ec.CheckCanceled(); err != nil {
			return err
		}
		if err := fn(i, t.Row(i)); err != nil {
			return err
		}
		if (i+1)%step == 0 || i+1 == n {
			ec.SetProgress(float64(i+1)/float64(n), fmt.Sprintf("processed %d of %d rows", i+1, n))
		}
	}
	return nil
}

// CellFunc maps one input cell to one output cell. A nil input is a missing
// value; returning nil produces a missing value.
type CellFunc func(i int, row core.Row, cell any) (any, error)

// MapColumn computes a new column from the source column of t and returns
// t with the new column appended. Cancellation is checked before each row.
func MapColumn(ec *core.ExecutionContext, t *core.Table, source string, out core.Column, fn CellFunc) (*core.Table, error) {
	idx := t.Schema().Index(source)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in input table", source)
	}
	values := make([]any, t.NumRows())
	err := ForEachRow(ec, t, func(i int, row core.Row) error {
		v, err := fn(i, row, row.Cells[idx])
		if err != nil {
			return err
		}
		values[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.WithColumn(out, values)
}

// Checkpoint is an explicit cancellation point around an aggregate step.
func Checkpoint(ec *core.ExecutionContext, stage string) error {
	if err := ec.CheckCanceled(); err != nil {
		ec.Logger.Debug("execution canceled", slog.String("stage", stage))
		return err
	}
	ec.Logger.Debug("checkpoint", slog.String("stage", stage))
	return nil
}

func progressStep(n int) int {
	if n < 100 {
		return 1
	}
	return n / 100
}
