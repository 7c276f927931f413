package text

import (
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// Category is the text processing folder of the demo extension.
var Category = node.Category{
	Path:        "/community/demo",
	LevelID:     "demoing1",
	Name:        "Text Processing",
	Description: "Text processing nodes",
	Icon:        "icons/text.png",
}

// Descriptors returns the registration records of the text nodes.
func Descriptors() []node.Descriptor {
	return []node.Descriptor{
		{
			ID:          StemmerID,
			Name:        "Porter Stemmer",
			Type:        node.TypeManipulator,
			Category:    Category.FullPath(),
			Icon:        "icons/stemmer.png",
			Description: "Reduces each word of a string column to its Porter stem.",
			Inputs: []node.Port{
				{Name: "Text", Description: "Table with a string column"},
			},
			Outputs: []node.Port{
				{Name: "Stemmed text", Description: "Input table with the stemmed words appended"},
			},
			Parameters: []node.ParameterSpec{
				{
					Name:        "target_column",
					Label:       "Text column",
					Description: "Column holding the words to stem",
					Selection:   node.SingleColumn,
					Filter:      stringFilter,
				},
			},
			Factory: NewStemmer,
		},
	}
}
