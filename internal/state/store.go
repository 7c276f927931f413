// Package state records node runs in a SQLite database.
package state

import (
	"time"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// Run is one execution of a node.
type Run struct {
	ID          string         `json:"id" yaml:"id"`
	NodeID      string         `json:"node_id" yaml:"node_id"`
	Status      RunStatus      `json:"status" yaml:"status"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	RowsIn      int            `json:"rows_in" yaml:"rows_in"`
	RowsOut     int            `json:"rows_out" yaml:"rows_out"`
	StartedAt   time.Time      `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Error       string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Duration returns the run's wall time, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// Store is the run log used by the engine.
type Store interface {
	CreateRun(nodeID string, params map[string]any, rowsIn int) (*Run, error)
	CompleteRun(id string, status RunStatus, rowsOut int, errMsg string) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)
	ListRunsForNode(nodeID string, limit int) ([]*Run, error)
	Close() error
}
