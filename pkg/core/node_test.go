package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionContext_CheckCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ec := NewExecutionContext(ctx, "test-node", nil, nil)

	require.NoError(t, ec.CheckCanceled())
	assert.False(t, ec.IsCanceled())

	cancel()

	err := ec.CheckCanceled()
	require.Error(t, err)
	assert.True(t, ec.IsCanceled())
	assert.True(t, errors.Is(err, ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, IsCanceled(err))
}

func TestExecutionContext_SetProgress(t *testing.T) {
	var got []float64
	ec := NewExecutionContext(context.Background(), "n", nil, func(f float64, _ string) {
		got = append(got, f)
	})

	ec.SetProgress(-1, "")
	ec.SetProgress(0.5, "")
	ec.SetProgress(2, "")

	assert.Equal(t, []float64{0, 0.5, 1}, got)

	// nil progress func is allowed
	NewExecutionContext(context.Background(), "n", nil, nil).SetProgress(0.5, "ignored")
}

func TestErrors(t *testing.T) {
	cfgErr := &ConfigurationError{Node: "stats-table", Parameter: "target_column", Reason: "no numeric column"}
	assert.Equal(t, `configure stats-table: parameter "target_column": no numeric column`, cfgErr.Error())

	inner := errors.New("boom")
	compErr := &ComputationError{Node: "n", Row: 2, RowID: "Row2", Err: inner}
	assert.Contains(t, compErr.Error(), "row 2 (Row2)")
	assert.True(t, errors.Is(compErr, inner))
	assert.False(t, IsCanceled(compErr))

	whole := &ComputationError{Node: "n", Row: -1, Err: inner}
	assert.Equal(t, "execute n: boom", whole.Error())
}
