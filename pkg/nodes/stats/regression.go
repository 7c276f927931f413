package stats

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/leapnodes/pkg/columnfilter"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// RegressionID is the registry ID of the Ordinary Linear Regression node.
const RegressionID = "stats-table"

// Output columns of the regression summary.
const (
	ColCoefficients = "coefficients"
	ColStdError     = "std_error"
	ColTValue       = "t_value"
	ColPValue       = "p_value"
	ColConfLower    = "conf_lower"
	ColConfUpper    = "conf_upper"
)

var numericFilter = columnfilter.ForKind(columnfilter.KindNumeric)

// SummarySchema is the output schema of the regression node.
func SummarySchema() *core.Schema {
	return core.MustSchema(
		core.NewColumn(core.TypeDouble, ColCoefficients),
		core.NewColumn(core.TypeDouble, ColStdError),
		core.NewColumn(core.TypeDouble, ColTValue),
		core.NewColumn(core.TypeDouble, ColPValue),
		core.NewColumn(core.TypeDouble, ColConfLower),
		core.NewColumn(core.TypeDouble, ColConfUpper),
	)
}

// RegressionParams are the parameters of the regression node.
type RegressionParams struct {
	// FeatureColumns are the regressors. Empty selects every numeric
	// column except the target.
	FeatureColumns []string `mapstructure:"feature_columns"`
	// TargetColumn is the response. Empty selects the last numeric column.
	TargetColumn string `mapstructure:"target_column"`
}

// Regression fits an ordinary least squares model and outputs one summary
// row per term.
type Regression struct {
	params RegressionParams
}

// NewRegression creates a node with unset parameters.
func NewRegression() core.Node {
	return &Regression{}
}

// Parameters implements core.Node.
func (n *Regression) Parameters() any {
	return &n.params
}

// Configure implements core.Node.
func (n *Regression) Configure(cc *core.ConfigurationContext, in *core.Schema) (*core.Schema, error) {
	target, features, err := n.resolve(in)
	if err != nil {
		return nil, err
	}
	cc.Logger.Debug("regression configured",
		slog.String("target", target),
		slog.Any("features", features))
	n.params.TargetColumn = target
	n.params.FeatureColumns = features
	return SummarySchema(), nil
}

func (n *Regression) resolve(in *core.Schema) (string, []string, error) {
	target, err := columnfilter.ResolveColumn(in, "target_column", n.params.TargetColumn, numericFilter)
	if err != nil {
		return "", nil, err
	}
	features, err := columnfilter.ResolveColumns(in, "feature_columns", n.params.FeatureColumns, numericFilter, target)
	if err != nil {
		return "", nil, err
	}
	if slices.Contains(features, target) {
		return "", nil, &core.ConfigurationError{
			Parameter: "feature_columns",
			Reason:    fmt.Sprintf("target column %q cannot also be a feature", target),
		}
	}
	return target, features, nil
}

// Execute implements core.Node.
func (n *Regression) Execute(ec *core.ExecutionContext, in *core.Table) (*core.Table, error) {
	target, features, err := n.resolve(in.Schema())
	if err != nil {
		return nil, err
	}

	if err := node.Checkpoint(ec, "materialize"); err != nil {
		return nil, err
	}
	schema := in.Schema()
	targetIdx := schema.Index(target)
	featureIdx := make([]int, len(features))
	for j, f := range features {
		featureIdx[j] = schema.Index(f)
	}

	x := make([][]float64, 0, in.NumRows())
	y := make([]float64, 0, in.NumRows())
	err = node.ForEachRow(ec, in, func(i int, row core.Row) error {
		v, ok := toFloat(row.Cells[targetIdx])
		if !ok {
			return &core.ComputationError{Node: ec.NodeID, Row: i, RowID: row.ID,
				Err: fmt.Errorf("missing value in column %q", target)}
		}
		xs := make([]float64, len(features))
		for j, idx := range featureIdx {
			f, ok := toFloat(row.Cells[idx])
			if !ok {
				return &core.ComputationError{Node: ec.NodeID, Row: i, RowID: row.ID,
					Err: fmt.Errorf("missing value in column %q", features[j])}
			}
			xs[j] = f
		}
		x = append(x, xs)
		y = append(y, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := node.Checkpoint(ec, "fit"); err != nil {
		return nil, err
	}
	fit, err := FitOLS(x, y, features)
	if err != nil {
		return nil, &core.ComputationError{Node: ec.NodeID, Row: -1, Err: err}
	}
	ec.Logger.Info("regression fitted",
		slog.Int("observations", fit.Observations),
		slog.Int("df", fit.DF),
		slog.Float64("rss", fit.RSS))

	out := core.NewTable(SummarySchema())
	for j, term := range fit.Terms {
		if err := out.AppendRow(term,
			fit.Coefficients[j], fit.StdErrors[j], fit.TValues[j],
			fit.PValues[j], fit.ConfLower[j], fit.ConfUpper[j]); err != nil {
			return nil, &core.ComputationError{Node: ec.NodeID, Row: -1, Err: err}
		}
	}
	ec.SetProgress(1, "regression fitted")
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
