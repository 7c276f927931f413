package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/leapstack-labs/leapnodes/internal/cli/output"
	"github.com/leapstack-labs/leapnodes/internal/state"
	"github.com/spf13/cobra"
)

// RunsOptions holds options for the runs command.
type RunsOptions struct {
	Node  string
	Limit int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	opts := &RunsOptions{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show run history",
		Long: `List recorded node runs, newest first, with their status, row counts and
duration. Runs are recorded in the state database unless record_runs is false.`,
		Example: `  leapnodes runs
  leapnodes runs --node stats-table --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Node, "node", "n", "", "Only show runs of this node")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 20, "Maximum number of runs (0 for all)")
	_ = cmd.RegisterFlagCompletionFunc("node", completeNodeIDs)

	return cmd
}

func runRuns(cmd *cobra.Command, opts *RunsOptions) error {
	cmdCtx, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if _, err := os.Stat(cmdCtx.Cfg.StatePath); errors.Is(err, os.ErrNotExist) {
		if !cmdCtx.Cfg.RecordRuns {
			return fmt.Errorf("no run history: run recording is disabled (record_runs: false)")
		}
		r.Status("No runs recorded yet")
		return nil
	}

	store, err := state.OpenStore(cmdCtx.Cfg.StatePath, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer func() { _ = store.Close() }()

	var runs []*state.Run
	if opts.Node != "" {
		runs, err = store.ListRunsForNode(opts.Node, opts.Limit)
	} else {
		runs, err = store.ListRuns(opts.Limit)
	}
	if err != nil {
		return err
	}

	infos := make([]output.RunInfo, 0, len(runs))
	for _, run := range runs {
		infos = append(infos, output.NewRunInfo(run))
	}
	if ok, err := r.Structured(infos); ok {
		return err
	}

	if len(infos) == 0 {
		r.Status("No runs recorded yet")
		return nil
	}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.ID,
			info.Node,
			info.Status,
			strconv.Itoa(info.RowsIn),
			strconv.Itoa(info.RowsOut),
			info.StartedAt,
			strconv.FormatInt(info.DurationMS, 10) + "ms",
			info.Error,
		})
	}
	r.Grid([]string{"id", "node", "status", "rows_in", "rows_out", "started", "duration", "error"}, rows)
	return nil
}
