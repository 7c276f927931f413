package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Node is a single configure/execute unit driven by the host.
//
// A fresh Node is created for every run. The host binds the user's
// parameter values into Parameters() before calling Configure, then calls
// Execute with a table matching the schema Configure received.
type Node interface {
	// Parameters returns a pointer to the node's parameter struct.
	// Fields carry mapstructure tags naming the parameters.
	Parameters() any

	// Configure validates the parameters against the input schema, resolves
	// defaults, and returns the schema Execute guarantees to produce.
	// It must not access data.
	Configure(cc *ConfigurationContext, in *Schema) (*Schema, error)

	// Execute transforms the input table. The returned table's schema must
	// equal the one returned by Configure.
	Execute(ec *ExecutionContext, in *Table) (*Table, error)
}

// ConfigurationContext is passed to Node.Configure.
type ConfigurationContext struct {
	NodeID string
	Logger *slog.Logger
}

// NewConfigurationContext creates a configuration context.
// If logger is nil, a discard logger is used.
func NewConfigurationContext(nodeID string, logger *slog.Logger) *ConfigurationContext {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ConfigurationContext{
		NodeID: nodeID,
		Logger: logger.With(slog.String("node", nodeID)),
	}
}

// ProgressFunc receives progress updates in [0, 1].
type ProgressFunc func(fraction float64, message string)

// ExecutionContext is passed to Node.Execute. The wrapped context.Context is
// the cancellation flag: once it is done, nodes stop at their next check.
type ExecutionContext struct {
	ctx      context.Context
	NodeID   string
	Logger   *slog.Logger
	progress ProgressFunc
}

// NewExecutionContext creates an execution context.
// If logger is nil, a discard logger is used; progress may be nil.
func NewExecutionContext(ctx context.Context, nodeID string, logger *slog.Logger, progress ProgressFunc) *ExecutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecutionContext{
		ctx:      ctx,
		NodeID:   nodeID,
		Logger:   logger.With(slog.String("node", nodeID)),
		progress: progress,
	}
}

// Context returns the underlying context.
func (ec *ExecutionContext) Context() context.Context {
	return ec.ctx
}

// IsCanceled reports whether cancellation has been requested.
func (ec *ExecutionContext) IsCanceled() bool {
	return ec.ctx.Err() != nil
}

// CheckCanceled returns an error wrapping ErrCanceled once cancellation has
// been requested, nil otherwise.
func (ec *ExecutionContext) CheckCanceled() error {
	if err := ec.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return nil
}

// SetProgress reports progress. Fractions are clamped to [0, 1].
func (ec *ExecutionContext) SetProgress(fraction float64, message string) {
	if ec.progress == nil {
		return
	}
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	ec.progress(fraction, message)
}
