package extension

import (
	"testing"

	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/leapstack-labs/leapnodes/pkg/nodes/chemistry"
	"github.com/leapstack-labs/leapnodes/pkg/nodes/stats"
	"github.com/leapstack-labs/leapnodes/pkg/nodes/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	assert.Equal(t, []string{
		chemistry.RotatableBondsID,
		stats.RegressionID,
		text.StemmerID,
	}, r.IDs())

	var paths []string
	for _, c := range r.Categories() {
		paths = append(paths, c.FullPath())
	}
	assert.Equal(t, []string{
		"/community/demo",
		"/community/demo/chemtdemo",
		"/community/demo/demoing1",
		"/community/demo/stats",
	}, paths)
}

func TestNew_Descriptors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	tests := []struct {
		id       string
		name     string
		typ      node.Type
		category string
		params   []string
	}{
		{chemistry.RotatableBondsID, "Rotatable Bonds Calculator", node.TypeVisualizer, "/community/demo/chemtdemo", []string{"target_column"}},
		{stats.RegressionID, "Ordinary Linear Regression", node.TypeLearner, "/community/demo/stats", []string{"feature_columns", "target_column"}},
		{text.StemmerID, "Porter Stemmer", node.TypeManipulator, "/community/demo/demoing1", []string{"target_column"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d, n, err := r.New(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name)
			assert.Equal(t, tt.typ, d.Type)
			assert.Equal(t, tt.category, d.Category)
			assert.Len(t, d.Inputs, 1)
			assert.Len(t, d.Outputs, 1)

			var names []string
			for _, p := range d.Parameters {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.params, names)
			assert.NotNil(t, n.Parameters())
		})
	}
}

func TestRegister_Twice(t *testing.T) {
	r := node.NewRegistry()
	require.NoError(t, Register(r))
	assert.Error(t, Register(r))
}
