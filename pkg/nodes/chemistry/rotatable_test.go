package chemistry

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapnodes/internal/testutil"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func molecules(t *testing.T, smiles ...any) *core.Table {
	t.Helper()
	tbl := core.NewTable(core.MustSchema(
		core.NewColumn(core.TypeString, "name"),
		core.NewColumn(core.TypeSMILES, "smiles"),
	))
	for i, s := range smiles {
		require.NoError(t, tbl.AppendRow(core.DefaultRowID(i), "mol", s))
	}
	return tbl
}

func run(t *testing.T, n core.Node, in *core.Table) (*core.Schema, *core.Table, error) {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	declared, err := n.Configure(core.NewConfigurationContext(RotatableBondsID, logger), in.Schema())
	if err != nil {
		return nil, nil, err
	}
	out, err := n.Execute(core.NewExecutionContext(context.Background(), RotatableBondsID, logger, nil), in)
	return declared, out, err
}

func TestRotatableBonds_Execute(t *testing.T) {
	in := molecules(t, "CCO", "c1ccccc1")

	declared, out, err := run(t, NewRotatableBonds(), in)
	require.NoError(t, err)

	assert.True(t, declared.Equal(out.Schema()))
	counts, err := out.ColumnValues(OutputColumn)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(0), int64(0)}, counts)
	assert.Equal(t, 2, in.Schema().Len(), "input table is untouched")
}

func TestRotatableBonds_MissingAndInvalid(t *testing.T) {
	in := molecules(t, "CCCCC", nil, "C1CC", "CC(=O)NC", "c1cccc1")

	_, out, err := run(t, NewRotatableBonds(), in)
	require.NoError(t, err)

	counts, err := out.ColumnValues(OutputColumn)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), nil, nil, int64(0), nil}, counts)
}

func TestRotatableBonds_Configure(t *testing.T) {
	tests := []struct {
		name    string
		schema  *core.Schema
		target  string
		want    string
		wantErr string
	}{
		{
			name: "defaults to last SMILES column",
			schema: core.MustSchema(
				core.NewColumn(core.TypeSMILES, "a"),
				core.NewColumn(core.TypeString, "label"),
				core.NewColumn(core.TypeSMILES, "b"),
			),
			want: "b",
		},
		{
			name: "explicit column",
			schema: core.MustSchema(
				core.NewColumn(core.TypeSMILES, "a"),
				core.NewColumn(core.TypeSMILES, "b"),
			),
			target: "a",
			want:   "a",
		},
		{
			name:    "no SMILES column",
			schema:  core.MustSchema(core.NewColumn(core.TypeString, "smiles")),
			wantErr: "no SMILES column",
		},
		{
			name:    "explicit column of wrong type",
			schema:  core.MustSchema(core.NewColumn(core.TypeString, "label"), core.NewColumn(core.TypeSMILES, "s")),
			target:  "label",
			wantErr: "expected a SMILES column",
		},
		{
			name: "output column already present",
			schema: core.MustSchema(
				core.NewColumn(core.TypeSMILES, "s"),
				core.NewColumn(core.TypeInt64, OutputColumn),
			),
			wantErr: OutputColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewRotatableBonds()
			require.NoError(t, node.BindParameters(n, map[string]any{"target_column": tt.target}))

			out, err := n.Configure(core.NewConfigurationContext(RotatableBondsID, testutil.NewTestLogger(t)), tt.schema)
			if tt.wantErr != "" {
				var cfgErr *core.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Parameters().(*RotatableBondsParams).TargetColumn)
			assert.Equal(t, tt.schema.Len()+1, out.Len())
			assert.Equal(t, core.NewColumn(core.TypeInt64, OutputColumn), out.Column(out.Len()-1))
		})
	}
}

func TestRotatableBonds_Canceled(t *testing.T) {
	in := molecules(t, "CCCC", "CCCCC")
	n := NewRotatableBonds()
	_, err := n.Configure(core.NewConfigurationContext(RotatableBondsID, nil), in.Schema())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := n.Execute(core.NewExecutionContext(ctx, RotatableBondsID, nil, nil), in)
	assert.Nil(t, out)
	assert.True(t, core.IsCanceled(err))
}

func TestDescriptors(t *testing.T) {
	ds := Descriptors()
	require.Len(t, ds, 1)
	d := ds[0]
	assert.Equal(t, RotatableBondsID, d.ID)
	assert.Equal(t, node.TypeVisualizer, d.Type)
	assert.Equal(t, "/community/demo/chemtdemo", d.Category)
	_, ok := d.Parameter("target_column")
	assert.True(t, ok)
	assert.IsType(t, &RotatableBonds{}, d.Factory())
}
