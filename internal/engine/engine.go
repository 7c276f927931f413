// Package engine drives nodes through their configure/execute lifecycle.
// It binds parameters, verifies that the executed table matches the
// configured schema, loads inputs through a database adapter and records
// every run in the state store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/leapnodes/internal/state"
	"github.com/leapstack-labs/leapnodes/pkg/adapter"
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// Engine runs registered nodes.
type Engine struct {
	registry *node.Registry
	store    state.Store
	logger   *slog.Logger

	// Database adapter (lazy initialized)
	db          adapter.Adapter
	dbConfig    adapter.Config
	dbConnected bool
	dbMu        sync.Mutex
}

// Config holds engine configuration.
type Config struct {
	// Registry holds the available nodes. Required.
	Registry *node.Registry
	// Store records runs. Nil disables run recording.
	Store state.Store
	// AdapterConfig is the database used for inputs and outputs.
	// Nil means an in-memory DuckDB database.
	AdapterConfig *adapter.Config
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine. The database adapter is only connected when an
// input is loaded or an output is written.
func New(cfg Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, errors.New("engine: node registry is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dbConfig := adapter.Config{Type: "duckdb", Path: ":memory:"}
	if cfg.AdapterConfig != nil {
		dbConfig = *cfg.AdapterConfig
	}

	logger.Debug("initializing engine",
		slog.Int("nodes", len(cfg.Registry.IDs())),
		slog.String("adapter", dbConfig.Type),
		slog.Bool("record_runs", cfg.Store != nil))

	return &Engine{
		registry: cfg.Registry,
		store:    cfg.Store,
		logger:   logger,
		dbConfig: dbConfig,
	}, nil
}

// Registry returns the engine's node registry.
func (e *Engine) Registry() *node.Registry {
	return e.registry
}

// Store returns the run store, or nil when runs are not recorded.
func (e *Engine) Store() state.Store {
	return e.store
}

// Close releases the database connection and the state store.
func (e *Engine) Close() error {
	var errs []error

	e.dbMu.Lock()
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close adapter: %w", err))
		}
		e.db = nil
		e.dbConnected = false
	}
	e.dbMu.Unlock()

	if e.store != nil {
		if err := e.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close state store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ensureDB connects the database adapter on first use.
func (e *Engine) ensureDB(ctx context.Context) (adapter.Adapter, error) {
	e.dbMu.Lock()
	defer e.dbMu.Unlock()

	if e.dbConnected {
		return e.db, nil
	}

	db, err := adapter.NewAdapter(e.dbConfig, e.logger)
	if err != nil {
		return nil, err
	}
	if err := db.Connect(ctx, e.dbConfig); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", e.dbConfig.Type, err)
	}

	e.logger.Debug("database connected", slog.String("adapter", e.dbConfig.Type))
	e.db = db
	e.dbConnected = true
	return db, nil
}
