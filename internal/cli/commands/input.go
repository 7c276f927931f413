package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapnodes/internal/cli/config"
	"github.com/leapstack-labs/leapnodes/internal/engine"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/spf13/cobra"
)

// inputOptions are the flags shared by commands that feed a table to a node.
type inputOptions struct {
	CSVPath string
	Query   string
	Params  []string
	Kinds   []string
}

func (o *inputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.CSVPath, "input", "i", "", "CSV file to use as the input table")
	cmd.Flags().StringVarP(&o.Query, "query", "q", "", "SQL query against the target database to use as the input table")
	cmd.Flags().StringArrayVarP(&o.Params, "param", "p", nil, "Node parameter as key=value (repeatable; lists are comma-separated)")
	cmd.Flags().StringArrayVarP(&o.Kinds, "kind", "k", nil, "Column type override as column=type, e.g. smiles=smiles (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("input", "query")
	cmd.MarkFlagsOneRequired("input", "query")
	_ = cmd.MarkFlagFilename("input", "csv")
}

// kinds parses the --kind overrides.
func (o *inputOptions) kinds() (map[string]core.DataType, error) {
	pairs, err := node.ParseAssignments(o.Kinds)
	if err != nil {
		return nil, fmt.Errorf("invalid --kind: %w", err)
	}
	kinds := make(map[string]core.DataType, len(pairs))
	for col, name := range pairs {
		t, err := core.ParseDataType(name)
		if err != nil {
			return nil, fmt.Errorf("invalid --kind for column %q: %w", col, err)
		}
		kinds[col] = t
	}
	return kinds, nil
}

// params merges the configured node defaults with the --param flags.
func (o *inputOptions) params(cfg *config.Config, nodeID string) (map[string]any, error) {
	pairs, err := node.ParseAssignments(o.Params)
	if err != nil {
		return nil, fmt.Errorf("invalid --param: %w", err)
	}
	flagParams := make(map[string]any, len(pairs))
	for k, v := range pairs {
		flagParams[k] = v
	}
	return node.MergeParameters(cfg.Project().NodeParams(nodeID), flagParams), nil
}

// load reads the input table through the engine.
func (o *inputOptions) load(ctx context.Context, eng *engine.Engine) (*core.Table, error) {
	kinds, err := o.kinds()
	if err != nil {
		return nil, err
	}
	return eng.LoadInput(ctx, engine.Input{CSVPath: o.CSVPath, Query: o.Query, Kinds: kinds})
}
