package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapnodes/internal/state"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// Request describes one node run.
type Request struct {
	NodeID string
	Params map[string]any
	Input  *core.Table
	// Progress receives progress updates (optional).
	Progress core.ProgressFunc
}

// Result is the outcome of a successful run.
type Result struct {
	// RunID is empty when runs are not recorded.
	RunID    string
	Output   *core.Table
	Declared *core.Schema
	Duration time.Duration
}

// Configure binds params into a fresh instance of the node and returns the
// output schema it declares for in.
func (e *Engine) Configure(_ context.Context, nodeID string, params map[string]any, in *core.Schema) (*core.Schema, error) {
	_, n, err := e.instantiate(nodeID, params)
	if err != nil {
		return nil, err
	}
	return e.configure(nodeID, n, in)
}

// Run configures and executes a fresh instance of the node on req.Input.
//
// Cancellation of ctx surfaces as an error matching core.ErrCanceled. A
// table whose schema differs from the configured one is rejected with
// *core.SchemaMismatchError.
func (e *Engine) Run(ctx context.Context, req Request) (result *Result, err error) {
	if req.Input == nil {
		return nil, errors.New("run: input table is required")
	}
	_, n, err := e.instantiate(req.NodeID, req.Params)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With(slog.String("node", req.NodeID))
	start := time.Now()

	var run *state.Run
	if e.store != nil {
		run, err = e.store.CreateRun(req.NodeID, req.Params, req.Input.NumRows())
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		defer func() {
			e.finishRun(logger, run, result, err)
		}()
	}

	declared, err := e.configure(req.NodeID, n, req.Input.Schema())
	if err != nil {
		return nil, err
	}

	ec := core.NewExecutionContext(ctx, req.NodeID, e.logger, req.Progress)
	if err := ec.CheckCanceled(); err != nil {
		return nil, err
	}

	logger.Info("executing node", slog.Int("rows", req.Input.NumRows()))
	out, err := n.Execute(ec, req.Input)
	if err != nil {
		var compErr *core.ComputationError
		if errors.As(err, &compErr) && compErr.Node == "" {
			compErr.Node = req.NodeID
		}
		return nil, err
	}
	if out == nil {
		return nil, &core.ComputationError{Node: req.NodeID, Row: -1, Err: errors.New("node returned no table")}
	}
	if !declared.Equal(out.Schema()) {
		return nil, &core.SchemaMismatchError{Node: req.NodeID, Declared: declared, Actual: out.Schema()}
	}

	result = &Result{
		Output:   out,
		Declared: declared,
		Duration: time.Since(start),
	}
	if run != nil {
		result.RunID = run.ID
	}
	logger.Info("node executed",
		slog.Int("rows_out", out.NumRows()),
		slog.Duration("duration", result.Duration))
	return result, nil
}

func (e *Engine) instantiate(nodeID string, params map[string]any) (*node.Descriptor, core.Node, error) {
	d, n, err := e.registry.New(nodeID)
	if err != nil {
		return nil, nil, err
	}
	if err := node.BindParameters(n, params); err != nil {
		return nil, nil, &core.ConfigurationError{Node: nodeID, Reason: err.Error()}
	}
	return d, n, nil
}

func (e *Engine) configure(nodeID string, n core.Node, in *core.Schema) (*core.Schema, error) {
	cc := core.NewConfigurationContext(nodeID, e.logger)
	out, err := n.Configure(cc, in)
	if err != nil {
		var cfgErr *core.ConfigurationError
		if errors.As(err, &cfgErr) && cfgErr.Node == "" {
			cfgErr.Node = nodeID
		}
		return nil, err
	}
	if out == nil {
		return nil, &core.ConfigurationError{Node: nodeID, Reason: "node declared no output schema"}
	}
	return out, nil
}

func (e *Engine) finishRun(logger *slog.Logger, run *state.Run, result *Result, runErr error) {
	status := state.RunStatusCompleted
	rowsOut := 0
	msg := ""
	switch {
	case runErr == nil:
		rowsOut = result.Output.NumRows()
	case core.IsCanceled(runErr):
		status = state.RunStatusCancelled
		msg = runErr.Error()
	default:
		status = state.RunStatusFailed
		msg = runErr.Error()
	}

	if err := e.store.CompleteRun(run.ID, status, rowsOut, msg); err != nil {
		logger.Warn("failed to record run completion",
			slog.String("run_id", run.ID),
			slog.String("error", err.Error()))
		return
	}
	logger.Debug("run recorded", slog.String("run_id", run.ID), slog.String("status", string(status)))
}
