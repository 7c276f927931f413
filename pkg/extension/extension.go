// Package extension assembles the demo node extension.
//
// The extension registers a root category, one sub-category per node
// family and the node descriptors of each family. Nothing registers
// itself at import time; the host calls New.
package extension

import (
	"fmt"

	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/leapstack-labs/leapnodes/pkg/nodes/chemistry"
	"github.com/leapstack-labs/leapnodes/pkg/nodes/stats"
	"github.com/leapstack-labs/leapnodes/pkg/nodes/text"
)

// Root is the top-level category of the extension.
var Root = node.Category{
	Path:        "/community/",
	LevelID:     "demo",
	Name:        "Demo Extension",
	Description: "Example nodes for chemistry, statistics and text processing",
	Icon:        "icons/demo.png",
}

type family struct {
	category    node.Category
	descriptors func() []node.Descriptor
}

var families = []family{
	{chemistry.Category, chemistry.Descriptors},
	{stats.Category, stats.Descriptors},
	{text.Category, text.Descriptors},
}

// New returns a registry holding every category and node of the extension.
func New() (*node.Registry, error) {
	r := node.NewRegistry()
	if err := Register(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds the extension's categories and nodes to r.
func Register(r *node.Registry) error {
	if err := r.RegisterCategory(Root); err != nil {
		return fmt.Errorf("failed to register root category: %w", err)
	}
	for _, f := range families {
		if err := r.RegisterCategory(f.category); err != nil {
			return fmt.Errorf("failed to register category %s: %w", f.category.FullPath(), err)
		}
		for _, d := range f.descriptors() {
			if err := r.Register(d); err != nil {
				return fmt.Errorf("failed to register node %s: %w", d.ID, err)
			}
		}
	}
	return nil
}
