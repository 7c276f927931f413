package stats

import (
	"context"
	"math"
	"testing"

	"github.com/leapstack-labs/leapnodes/internal/testutil"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingTable(t *testing.T) *core.Table {
	t.Helper()
	tbl := core.NewTable(core.MustSchema(
		core.NewColumn(core.TypeString, "label"),
		core.NewColumn(core.TypeInt64, "x"),
		core.NewColumn(core.TypeDouble, "y"),
	))
	tbl.MustAppendRow("Row0", "a", int64(1), 2.0).
		MustAppendRow("Row1", "b", int64(2), 4.0).
		MustAppendRow("Row2", "c", int64(3), 6.0)
	return tbl
}

func TestRegression_Execute(t *testing.T) {
	in := trainingTable(t)
	n := NewRegression()

	declared, err := n.Configure(testutil.ConfigurationContext(t, RegressionID), in.Schema())
	require.NoError(t, err)

	params := n.Parameters().(*RegressionParams)
	assert.Equal(t, "y", params.TargetColumn)
	assert.Equal(t, []string{"x"}, params.FeatureColumns)

	ec, reported := testutil.ExecutionContext(t, context.Background(), RegressionID)
	out, err := n.Execute(ec, in)
	require.NoError(t, err)
	assert.NotEmpty(t, reported.Fractions())

	assert.True(t, declared.Equal(out.Schema()))
	require.Equal(t, 2, out.NumRows())
	assert.Equal(t, "const", out.Row(0).ID)
	assert.Equal(t, "x", out.Row(1).ID)

	coef, err := out.ColumnValues(ColCoefficients)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, coef[1].(float64), 1e-9)

	pvals, err := out.ColumnValues(ColPValue)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pvals[1].(float64), 1e-6)

	// A perfect fit has zero standard errors, so the statistics of a zero
	// intercept are undefined and the slope's t-value is infinite.
	tvals, err := out.ColumnValues(ColTValue)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(tvals[0].(float64)))
	assert.True(t, math.IsNaN(pvals[0].(float64)))
	assert.True(t, math.IsInf(tvals[1].(float64), 1))
}

func TestRegression_Configure(t *testing.T) {
	schema := core.MustSchema(
		core.NewColumn(core.TypeDouble, "a"),
		core.NewColumn(core.TypeString, "s"),
		core.NewColumn(core.TypeInt64, "b"),
		core.NewColumn(core.TypeDouble, "c"),
	)

	tests := []struct {
		name         string
		params       map[string]any
		schema       *core.Schema
		wantTarget   string
		wantFeatures []string
		wantErr      string
	}{
		{
			name:         "defaults",
			schema:       schema,
			wantTarget:   "c",
			wantFeatures: []string{"a", "b"},
		},
		{
			name:         "explicit target",
			params:       map[string]any{"target_column": "a"},
			schema:       schema,
			wantTarget:   "a",
			wantFeatures: []string{"b", "c"},
		},
		{
			name:         "comma separated features",
			params:       map[string]any{"feature_columns": "b, a", "target_column": "c"},
			schema:       schema,
			wantTarget:   "c",
			wantFeatures: []string{"b", "a"},
		},
		{
			name:    "target among features",
			params:  map[string]any{"feature_columns": []string{"a", "c"}, "target_column": "c"},
			schema:  schema,
			wantErr: "cannot also be a feature",
		},
		{
			name:    "string feature",
			params:  map[string]any{"feature_columns": "s"},
			schema:  schema,
			wantErr: "expected a numeric column",
		},
		{
			name:    "no numeric columns",
			schema:  core.MustSchema(core.NewColumn(core.TypeString, "s")),
			wantErr: "no numeric column",
		},
		{
			name:    "only the target is numeric",
			schema:  core.MustSchema(core.NewColumn(core.TypeString, "s"), core.NewColumn(core.TypeDouble, "y")),
			wantErr: "feature_columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewRegression()
			require.NoError(t, node.BindParameters(n, tt.params))

			out, err := n.Configure(core.NewConfigurationContext(RegressionID, nil), tt.schema)
			if tt.wantErr != "" {
				var cfgErr *core.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, SummarySchema().Equal(out))

			params := n.Parameters().(*RegressionParams)
			assert.Equal(t, tt.wantTarget, params.TargetColumn)
			assert.Equal(t, tt.wantFeatures, params.FeatureColumns)
		})
	}
}

func TestRegression_ComputationErrors(t *testing.T) {
	schema := core.MustSchema(core.NewColumn(core.TypeDouble, "x"), core.NewColumn(core.TypeDouble, "y"))

	t.Run("missing value", func(t *testing.T) {
		in := core.NewTable(schema).
			MustAppendRow("Row0", 1.0, 2.0).
			MustAppendRow("Row1", nil, 4.0).
			MustAppendRow("Row2", 3.0, 6.0)

		n := NewRegression()
		_, err := n.Configure(core.NewConfigurationContext(RegressionID, nil), schema)
		require.NoError(t, err)

		_, err = n.Execute(core.NewExecutionContext(context.Background(), RegressionID, nil, nil), in)
		var compErr *core.ComputationError
		require.ErrorAs(t, err, &compErr)
		assert.Equal(t, 1, compErr.Row)
		assert.Equal(t, "Row1", compErr.RowID)
		assert.False(t, core.IsCanceled(err))
	})

	t.Run("too few rows", func(t *testing.T) {
		in := core.NewTable(schema).MustAppendRow("Row0", 1.0, 2.0)

		n := NewRegression()
		_, err := n.Configure(core.NewConfigurationContext(RegressionID, nil), schema)
		require.NoError(t, err)

		_, err = n.Execute(core.NewExecutionContext(context.Background(), RegressionID, nil, nil), in)
		var compErr *core.ComputationError
		require.ErrorAs(t, err, &compErr)
		assert.Equal(t, -1, compErr.Row)
	})
}

func TestRegression_Canceled(t *testing.T) {
	in := trainingTable(t)
	n := NewRegression()
	_, err := n.Configure(core.NewConfigurationContext(RegressionID, nil), in.Schema())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := n.Execute(core.NewExecutionContext(ctx, RegressionID, nil, nil), in)
	assert.Nil(t, out)
	assert.True(t, core.IsCanceled(err))

	var compErr *core.ComputationError
	assert.NotErrorAs(t, err, &compErr)
}
