package output

import (
	"time"

	"github.com/leapstack-labs/leapnodes/internal/state"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// NodeInfo is the structured form of a node descriptor.
type NodeInfo struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Type        string          `json:"type" yaml:"type"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Inputs      []PortInfo      `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs     []PortInfo      `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Parameters  []ParameterInfo `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// PortInfo describes a port.
type PortInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ParameterInfo describes a column parameter.
type ParameterInfo struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Selection   string `json:"selection" yaml:"selection"`
	Accepts     string `json:"accepts" yaml:"accepts"`
}

// NewNodeInfo converts a descriptor.
func NewNodeInfo(d *node.Descriptor) NodeInfo {
	info := NodeInfo{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type.String(),
		Category:    d.Category,
		Description: d.Description,
	}
	for _, p := range d.Inputs {
		info.Inputs = append(info.Inputs, PortInfo(p))
	}
	for _, p := range d.Outputs {
		info.Outputs = append(info.Outputs, PortInfo(p))
	}
	for _, p := range d.Parameters {
		info.Parameters = append(info.Parameters, ParameterInfo{
			Name:        p.Name,
			Label:       p.Label,
			Description: p.Description,
			Selection:   p.Selection.String(),
			Accepts:     p.Filter.Describe(),
		})
	}
	return info
}

// SchemaOutput is the structured form of a configured output schema.
type SchemaOutput struct {
	Node    string        `json:"node" yaml:"node"`
	Columns []core.Column `json:"columns" yaml:"columns"`
}

// RunInfo is the structured form of a recorded run.
type RunInfo struct {
	ID          string         `json:"id" yaml:"id"`
	Node        string         `json:"node" yaml:"node"`
	Status      string         `json:"status" yaml:"status"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	RowsIn      int            `json:"rows_in" yaml:"rows_in"`
	RowsOut     int            `json:"rows_out" yaml:"rows_out"`
	StartedAt   string         `json:"started_at" yaml:"started_at"`
	DurationMS  int64          `json:"duration_ms" yaml:"duration_ms"`
	Error       string         `json:"error,omitempty" yaml:"error,omitempty"`
	CompletedAt string         `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// NewRunInfo converts a recorded run.
func NewRunInfo(run *state.Run) RunInfo {
	info := RunInfo{
		ID:         run.ID,
		Node:       run.NodeID,
		Status:     string(run.Status),
		Params:     run.Params,
		RowsIn:     run.RowsIn,
		RowsOut:    run.RowsOut,
		StartedAt:  run.StartedAt.Format(time.RFC3339),
		DurationMS: run.Duration().Milliseconds(),
		Error:      run.Error,
	}
	if run.CompletedAt != nil {
		info.CompletedAt = run.CompletedAt.Format(time.RFC3339)
	}
	return info
}
