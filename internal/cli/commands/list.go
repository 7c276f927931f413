package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapnodes/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered nodes",
		Long: `List every node of the extension with its type and category.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml, csv`,
		Example: `  # List all nodes
  leapnodes list

  # List nodes as JSON
  leapnodes list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	descriptors := cmdCtx.Registry.List()

	infos := make([]output.NodeInfo, 0, len(descriptors))
	for _, d := range descriptors {
		infos = append(infos, output.NewNodeInfo(d))
	}
	if ok, err := r.Structured(infos); ok {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeText:
		r.Header(1, fmt.Sprintf("Nodes (%d total)", len(infos)))
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Nodes (%d total)", len(infos))))
		r.Println("")
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.ID, info.Name, info.Type, info.Category})
	}
	r.Grid([]string{"id", "name", "type", "category"}, rows)
	return nil
}
