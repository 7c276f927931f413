package commands

import (
	"github.com/leapstack-labs/leapnodes/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewConfigureCommand creates the configure command.
func NewConfigureCommand() *cobra.Command {
	opts := &inputOptions{}

	cmd := &cobra.Command{
		Use:   "configure <node-id>",
		Short: "Show the output schema a node declares for an input",
		Long: `Configure a node against an input table and print the output schema it
declares, without executing it. Parameters left unset are auto-selected the
way the node would on first configuration.`,
		Example: `  # Schema of the stemmer on a CSV file
  leapnodes configure text-proc-table --input words.csv

  # Treat a string column as SMILES
  leapnodes configure rotatable-bonds-calculator --input molecules.csv --kind smiles=smiles -o yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNodeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, args[0], opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func runConfigure(cmd *cobra.Command, id string, opts *inputOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	if _, err := cmdCtx.Registry.Lookup(id); err != nil {
		return err
	}
	params, err := opts.params(cmdCtx.Cfg, id)
	if err != nil {
		return err
	}
	in, err := opts.load(cmd.Context(), cmdCtx.Engine)
	if err != nil {
		return err
	}

	schema, err := cmdCtx.Engine.Configure(cmd.Context(), id, params, in.Schema())
	if err != nil {
		return err
	}

	if ok, err := r.Structured(output.SchemaOutput{Node: id, Columns: schema.Columns()}); ok {
		return err
	}

	rows := make([][]string, 0, schema.Len())
	for _, c := range schema.Columns() {
		rows = append(rows, []string{c.Name, c.Type.String()})
	}
	r.Grid([]string{"column", "type"}, rows)
	return nil
}
