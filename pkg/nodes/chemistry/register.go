package chemistry

import (
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// Category is the chemistry folder of the demo extension.
var Category = node.Category{
	Path:        "/community/demo",
	LevelID:     "chemtdemo",
	Name:        "Chemistry",
	Description: "Cheminformatics nodes",
	Icon:        "icons/chemistry.png",
}

// Descriptors returns the registration records of the chemistry nodes.
func Descriptors() []node.Descriptor {
	return []node.Descriptor{
		{
			ID:          RotatableBondsID,
			Name:        "Rotatable Bonds Calculator",
			Type:        node.TypeVisualizer,
			Category:    Category.FullPath(),
			Icon:        "icons/rotatable-bonds.png",
			Description: "Counts the rotatable bonds of each molecule in a SMILES column.",
			Inputs: []node.Port{
				{Name: "Molecules", Description: "Table with a SMILES column"},
			},
			Outputs: []node.Port{
				{Name: "Molecules with descriptor", Description: "Input table with the rotatable bond count appended"},
			},
			Parameters: []node.ParameterSpec{
				{
					Name:        "target_column",
					Label:       "SMILES column",
					Description: "Column holding the molecules",
					Selection:   node.SingleColumn,
					Filter:      smilesFilter,
				},
			},
			Factory: NewRotatableBonds,
		},
	}
}
