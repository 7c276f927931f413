// Package chemistry provides the cheminformatics demo nodes.
package chemistry

import (
	"log/slog"

	"github.com/leapstack-labs/leapnodes/pkg/chem"
	"github.com/leapstack-labs/leapnodes/pkg/columnfilter"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// RotatableBondsID is the registry ID of the Rotatable Bonds Calculator.
const RotatableBondsID = "rotatable-bonds-calculator"

// OutputColumn is the name of the column appended by the node.
const OutputColumn = "Number of Rotatable Bonds"

var smilesFilter = columnfilter.ForKind(columnfilter.KindChemistry)

// RotatableBondsParams are the parameters of the Rotatable Bonds Calculator.
type RotatableBondsParams struct {
	// TargetColumn is the SMILES column. Empty selects the last SMILES column.
	TargetColumn string `mapstructure:"target_column"`
}

// RotatableBonds appends the number of rotatable bonds of each molecule.
type RotatableBonds struct {
	params RotatableBondsParams
}

// NewRotatableBonds creates a node with unset parameters.
func NewRotatableBonds() core.Node {
	return &RotatableBonds{}
}

// Parameters implements core.Node.
func (n *RotatableBonds) Parameters() any {
	return &n.params
}

// Configure implements core.Node.
func (n *RotatableBonds) Configure(cc *core.ConfigurationContext, in *core.Schema) (*core.Schema, error) {
	target, err := columnfilter.ResolveColumn(in, "target_column", n.params.TargetColumn, smilesFilter)
	if err != nil {
		return nil, err
	}
	if n.params.TargetColumn == "" {
		cc.Logger.Debug("defaulted target column", slog.String("column", target))
	}
	n.params.TargetColumn = target

	out, err := in.Append(core.NewColumn(core.TypeInt64, OutputColumn))
	if err != nil {
		return nil, &core.ConfigurationError{Reason: err.Error()}
	}
	return out, nil
}

// Execute implements core.Node.
//
// Missing molecules yield missing counts. SMILES that fail to parse yield a
// missing count and a warning; the remaining rows are still processed.
func (n *RotatableBonds) Execute(ec *core.ExecutionContext, in *core.Table) (*core.Table, error) {
	target, err := columnfilter.ResolveColumn(in.Schema(), "target_column", n.params.TargetColumn, smilesFilter)
	if err != nil {
		return nil, err
	}

	var failed int
	out, err := node.MapColumn(ec, in, target, core.NewColumn(core.TypeInt64, OutputColumn),
		func(_ int, row core.Row, cell any) (any, error) {
			smiles, ok := cell.(string)
			if !ok {
				return nil, nil
			}
			mol, err := chem.ParseSMILES(smiles)
			if err != nil {
				failed++
				ec.Logger.Warn("could not parse SMILES",
					slog.String("row", row.ID),
					slog.String("smiles", smiles),
					slog.String("error", err.Error()))
				return nil, nil
			}
			return int64(chem.NumRotatableBonds(mol)), nil
		})
	if err != nil {
		return nil, err
	}

	if failed > 0 {
		ec.Logger.Info("rotatable bonds computed with unparsable molecules",
			slog.Int("rows", in.NumRows()),
			slog.Int("unparsable", failed))
	}
	return out, nil
}
