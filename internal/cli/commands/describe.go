package commands

import (
	"github.com/leapstack-labs/leapnodes/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <node-id>",
		Short: "Show a node's ports and parameters",
		Long: `Show the registration record of a node: its type, category, ports and the
column parameters it accepts together with the column types each one offers.`,
		Example: `  leapnodes describe stats-table
  leapnodes describe rotatable-bonds-calculator --output yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNodeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}
}

func runDescribe(cmd *cobra.Command, id string) error {
	cmdCtx, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	d, err := cmdCtx.Registry.Lookup(id)
	if err != nil {
		return err
	}
	info := output.NewNodeInfo(d)
	if ok, err := r.Structured(info); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, info.Name))
	} else {
		r.Header(1, info.Name)
	}
	r.KeyValue("ID", info.ID)
	r.KeyValue("Type", info.Type)
	r.KeyValue("Category", info.Category)
	if info.Description != "" {
		r.KeyValue("Description", info.Description)
	}
	for _, p := range info.Inputs {
		r.KeyValue("Input", portLabel(p))
	}
	for _, p := range info.Outputs {
		r.KeyValue("Output", portLabel(p))
	}

	defaults := cmdCtx.Cfg.Project().NodeParams(id)
	if len(info.Parameters) > 0 {
		r.Println("")
		rows := make([][]string, 0, len(info.Parameters))
		for _, p := range info.Parameters {
			def := ""
			if v, ok := defaults[p.Name]; ok {
				def = output.FormatCell(v)
			}
			rows = append(rows, []string{p.Name, p.Label, p.Selection, p.Accepts, def})
		}
		r.Grid([]string{"parameter", "label", "selection", "accepts", "default"}, rows)
	}
	return nil
}

func portLabel(p output.PortInfo) string {
	if p.Description == "" {
		return p.Name
	}
	return p.Name + " (" + p.Description + ")"
}
