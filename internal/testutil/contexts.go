package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// Progress records the fractions reported by a node during Execute.
type Progress struct {
	mu        sync.Mutex
	fractions []float64
}

// Fractions returns the reported fractions in order.
func (p *Progress) Fractions() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.fractions...)
}

func (p *Progress) record(f float64, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fractions = append(p.fractions, f)
}

// ConfigurationContext returns a configuration context for nodeID that
// logs through t.
func ConfigurationContext(t testing.TB, nodeID string) *core.ConfigurationContext {
	t.Helper()
	return core.NewConfigurationContext(nodeID, NewTestLogger(t))
}

// ExecutionContext returns an execution context for nodeID bound to ctx,
// logging through t and recording progress.
func ExecutionContext(t testing.TB, ctx context.Context, nodeID string) (*core.ExecutionContext, *Progress) {
	t.Helper()
	p := &Progress{}
	return core.NewExecutionContext(ctx, nodeID, NewTestLogger(t), p.record), p
}
