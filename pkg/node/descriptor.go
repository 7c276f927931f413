// Package node provides the registration records and helpers shared by all
// nodes: categories, descriptors, the registry, parameter binding and the
// cancellation-aware row loops.
package node

import (
	"strings"

	"github.com/leapstack-labs/leapnodes/pkg/columnfilter"
	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// Type tags a node for the host's palette.
type Type int

// Node types known to the host.
const (
	TypeOther Type = iota
	TypeSource
	TypeSink
	TypeLearner
	TypePredictor
	TypeManipulator
	TypeVisualizer
)

// String returns the string representation of the node type.
func (t Type) String() string {
	switch t {
	case TypeSource:
		return "source"
	case TypeSink:
		return "sink"
	case TypeLearner:
		return "learner"
	case TypePredictor:
		return "predictor"
	case TypeManipulator:
		return "manipulator"
	case TypeVisualizer:
		return "visualizer"
	default:
		return "other"
	}
}

// Category is a folder in the host's node repository.
type Category struct {
	// Path is the parent path, e.g. "/community/demo".
	Path string
	// LevelID is this category's path segment, e.g. "stats".
	LevelID     string
	Name        string
	Description string
	Icon        string
}

// FullPath returns Path joined with LevelID, e.g. "/community/demo/stats".
func (c Category) FullPath() string {
	return strings.TrimSuffix(c.Path, "/") + "/" + c.LevelID
}

// Port describes an input or output table port.
type Port struct {
	Name        string
	Description string
}

// Selection is the cardinality of a column parameter.
type Selection int

// Column parameter cardinalities.
const (
	SingleColumn Selection = iota
	MultiColumn
)

// String returns "single" or "multi".
func (s Selection) String() string {
	if s == MultiColumn {
		return "multi"
	}
	return "single"
}

// ParameterSpec declares a column parameter shown in the configuration dialog.
type ParameterSpec struct {
	// Name is the mapstructure key of the parameter field.
	Name        string
	Label       string
	Description string
	Selection   Selection
	// Port is the index of the input port whose columns are offered.
	Port   int
	Filter columnfilter.Filter
}

// Factory creates a fresh node instance with unset parameters.
type Factory func() core.Node

// Descriptor is the registration record of a node.
type Descriptor struct {
	// ID is the stable identifier, unique within a registry.
	ID          string
	Name        string
	Type        Type
	Category    string // full category path
	Icon        string
	Description string
	Inputs      []Port
	Outputs     []Port
	Parameters  []ParameterSpec
	Factory     Factory
}

// Parameter returns the named parameter spec.
func (d *Descriptor) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}
