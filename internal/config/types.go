// Package config provides shared configuration types for leapnodes.
// This package is decoupled from CLI concerns so the engine and tests can
// load project configuration without cobra.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapnodes/pkg/adapter"
)

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // duckdb, postgres

	// File-based databases (DuckDB)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g., DuckDB extensions, settings)
	Params map[string]any `koanf:"params"`
}

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	// Use adapter registry as single source of truth
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	return nil
}

// AdapterConfig converts the target into the adapter's connection config.
func (t *TargetConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     strings.ToLower(t.Type),
		Path:     t.Database,
		Database: t.Database,
		Schema:   t.Schema,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
		Params:   t.Params,
	}
}

// ProjectConfig holds the project settings shared by every command.
type ProjectConfig struct {
	StatePath string        `koanf:"state_path"`
	Target    *TargetConfig `koanf:"target"`
	// Nodes holds default parameters per node ID.
	Nodes map[string]map[string]any `koanf:"nodes"`
}

// NodeParams returns the configured default parameters of a node.
// The result is never nil.
func (c *ProjectConfig) NodeParams(id string) map[string]any {
	params := make(map[string]any)
	if c == nil {
		return params
	}
	for k, v := range c.Nodes[id] {
		params[k] = v
	}
	return params
}
