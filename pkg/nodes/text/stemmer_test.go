package text

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapnodes/internal/testutil"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"running", "Run"},
		{"flies", "Fli"},
		{"Caresses", "Caress"},
		{"Hopping", "Hop"},
		{"cats", "Cat"},
		{"say", "Say"},
		{"days", "Day"},
		{"played", "Play"},
		{"dying", "Die"},
		{"lying", "Lie"},
		{"news", "News"},
		{"skies", "Sky"},
		{"ties", "Tie"},
		{"died", "Die"},
		{"cry", "Cri"},
		{"crying", "Cri"},
		{"happy", "Happi"},
		{"bonsai", "Bonsai"},
		{"as", "As"},
		{"a", "A"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.in))
		})
	}
}

func TestStemmer_Execute(t *testing.T) {
	in := core.NewTable(core.MustSchema(
		core.NewColumn(core.TypeInt64, "id"),
		core.NewColumn(core.TypeString, "word"),
	))
	in.MustAppendRow("Row0", int64(1), "running").
		MustAppendRow("Row1", int64(2), "flies").
		MustAppendRow("Row2", int64(3), nil)

	n := NewStemmer()
	declared, err := n.Configure(testutil.ConfigurationContext(t, StemmerID), in.Schema())
	require.NoError(t, err)

	ec, reported := testutil.ExecutionContext(t, context.Background(), StemmerID)
	out, err := n.Execute(ec, in)
	require.NoError(t, err)

	assert.True(t, declared.Equal(out.Schema()))
	stems, err := out.ColumnValues(OutputColumn)
	require.NoError(t, err)
	assert.Equal(t, []any{"Run", "Fli", nil}, stems)
	progress := reported.Fractions()
	require.NotEmpty(t, progress)
	assert.Equal(t, 1.0, progress[len(progress)-1])
}

func TestStemmer_Configure(t *testing.T) {
	schema := core.MustSchema(
		core.NewColumn(core.TypeString, "first"),
		core.NewColumn(core.TypeSMILES, "smiles"),
		core.NewColumn(core.TypeString, "second"),
		core.NewColumn(core.TypeDouble, "score"),
	)

	t.Run("defaults to last string column", func(t *testing.T) {
		n := NewStemmer()
		_, err := n.Configure(core.NewConfigurationContext(StemmerID, nil), schema)
		require.NoError(t, err)
		assert.Equal(t, "second", n.Parameters().(*StemmerParams).TargetColumn)
	})

	t.Run("SMILES is not a string column", func(t *testing.T) {
		n := NewStemmer()
		require.NoError(t, node.BindParameters(n, map[string]any{"target_column": "smiles"}))
		_, err := n.Configure(core.NewConfigurationContext(StemmerID, nil), schema)
		var cfgErr *core.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "target_column", cfgErr.Parameter)
	})

	t.Run("unknown column", func(t *testing.T) {
		n := NewStemmer()
		require.NoError(t, node.BindParameters(n, map[string]any{"target_column": "missing"}))
		_, err := n.Configure(core.NewConfigurationContext(StemmerID, nil), schema)
		assert.ErrorContains(t, err, `column "missing" not found`)
	})

	t.Run("no string column", func(t *testing.T) {
		n := NewStemmer()
		_, err := n.Configure(core.NewConfigurationContext(StemmerID, nil),
			core.MustSchema(core.NewColumn(core.TypeDouble, "score")))
		var cfgErr *core.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "no string column")
	})
}

func TestStemmer_Canceled(t *testing.T) {
	in := core.NewTable(core.MustSchema(core.NewColumn(core.TypeString, "word"))).
		MustAppendRow("Row0", "running")
	n := NewStemmer()
	_, err := n.Configure(core.NewConfigurationContext(StemmerID, nil), in.Schema())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := n.Execute(core.NewExecutionContext(ctx, StemmerID, nil, nil), in)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, core.ErrCanceled)
}
