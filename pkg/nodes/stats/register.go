package stats

import (
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// Category is the statistics folder of the demo extension.
var Category = node.Category{
	Path:        "/community/demo",
	LevelID:     "stats",
	Name:        "Statistics",
	Description: "Statistical modelling nodes",
	Icon:        "icons/stats.png",
}

// Descriptors returns the registration records of the statistics nodes.
func Descriptors() []node.Descriptor {
	return []node.Descriptor{
		{
			ID:          RegressionID,
			Name:        "Ordinary Linear Regression",
			Type:        node.TypeLearner,
			Category:    Category.FullPath(),
			Icon:        "icons/regression.png",
			Description: "Fits an ordinary least squares model and outputs the coefficient table.",
			Inputs: []node.Port{
				{Name: "Training data", Description: "Table with numeric feature and target columns"},
			},
			Outputs: []node.Port{
				{Name: "Model summary", Description: "One row per term with coefficient, standard error, t statistic, p-value and 95% confidence bounds"},
			},
			Parameters: []node.ParameterSpec{
				{
					Name:        "feature_columns",
					Label:       "Feature columns",
					Description: "Regressors; defaults to every other numeric column",
					Selection:   node.MultiColumn,
					Filter:      numericFilter,
				},
				{
					Name:        "target_column",
					Label:       "Target column",
					Description: "Response variable",
					Selection:   node.SingleColumn,
					Filter:      numericFilter,
				},
			},
			Factory: NewRegression,
		},
	}
}
