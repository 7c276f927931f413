package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapnodes/internal/cli/config"
	"github.com/leapstack-labs/leapnodes/internal/cli/output"
	"github.com/leapstack-labs/leapnodes/internal/engine"
	"github.com/leapstack-labs/leapnodes/internal/state"
	"github.com/leapstack-labs/leapnodes/pkg/extension"
	"github.com/leapstack-labs/leapnodes/pkg/node"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *node.Registry
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return nil, nil, err
	}

	eng, err := createEngine(cc.Cfg, cc.Registry, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	cc.Engine = eng

	cleanup := func() {
		if err := eng.Close(); err != nil {
			cc.Logger.Warn("failed to close engine", slog.String("error", err.Error()))
		}
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that only inspect the node registry.
func NewCommandContextWithoutEngine(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	registry, err := extension.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load nodes: %w", err)
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Registry: registry,
		Renderer: r,
	}, nil
}

func createEngine(cfg *config.Config, registry *node.Registry, logger *slog.Logger) (*engine.Engine, error) {
	var store state.Store
	if cfg.RecordRuns {
		s, err := state.OpenStore(cfg.StatePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
		store = s
	}

	engineCfg := engine.Config{
		Registry: registry,
		Store:    store,
		Logger:   logger,
	}
	if cfg.Target != nil {
		adapterCfg := cfg.Target.AdapterConfig()
		engineCfg.AdapterConfig = &adapterCfg
	}

	eng, err := engine.New(engineCfg)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return eng, nil
}

// completeNodeIDs offers registered node IDs for the first argument.
func completeNodeIDs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry, err := extension.New()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, id := range registry.IDs() {
		if strings.HasPrefix(id, toComplete) {
			ids = append(ids, id)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
