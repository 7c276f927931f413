package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/leapstack-labs/leapnodes/internal/engine"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/spf13/cobra"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	inputOptions
	WriteTable string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <node-id>",
		Short: "Execute a node on an input table",
		Long: `Configure and execute a node on an input table and print the result.

The input is a CSV file or a SQL query against the target database. The
executed table must match the schema declared at configuration. Press
Ctrl-C to cancel a running node; the run is recorded as cancelled.`,
		Example: `  # Stem the words of a CSV file
  leapnodes run text-proc-table --input words.csv --param target_column=word

  # Fit a regression on a query and store the summary table
  leapnodes run stats-table --query "SELECT x1, x2, y FROM samples" \
    --param feature_columns=x1,x2 --param target_column=y --write-table ols_summary

  # Count rotatable bonds, reading the smiles column as SMILES
  leapnodes run rotatable-bonds-calculator --input molecules.csv --kind smiles=smiles -o csv`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNodeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.WriteTable, "write-table", "w", "", "Also write the output table to the target database under this name")

	return cmd
}

func runRun(cmd *cobra.Command, id string, opts *RunOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	if _, err := cmdCtx.Registry.Lookup(id); err != nil {
		return err
	}
	params, err := opts.params(cmdCtx.Cfg, id)
	if err != nil {
		return err
	}
	in, err := opts.load(ctx, cmdCtx.Engine)
	if err != nil {
		return err
	}

	res, err := cmdCtx.Engine.Run(ctx, engine.Request{
		NodeID: id,
		Params: params,
		Input:  in,
		Progress: func(fraction float64, message string) {
			logger.Debug("progress", slog.Float64("fraction", fraction), slog.String("message", message))
		},
	})
	if err != nil {
		if core.IsCanceled(err) {
			return fmt.Errorf("run of %s canceled", id)
		}
		return err
	}

	if opts.WriteTable != "" {
		if err := cmdCtx.Engine.WriteOutput(context.WithoutCancel(ctx), opts.WriteTable, res.Output); err != nil {
			return fmt.Errorf("failed to write output table: %w", err)
		}
	}

	if err := r.Table(res.Output); err != nil {
		return err
	}

	summary := fmt.Sprintf("%s: %d rows in, %d rows out, %s", id, in.NumRows(), res.Output.NumRows(), res.Duration.Round(time.Millisecond))
	if res.RunID != "" {
		summary += " (run " + res.RunID + ")"
	}
	if opts.WriteTable != "" {
		summary += ", written to " + opts.WriteTable
	}
	r.Status(summary)
	return nil
}
