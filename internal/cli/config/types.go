// Package config provides configuration management for the leapnodes CLI.
//
// This package extends the shared configuration types from internal/config
// with CLI-specific fields. The shared TargetConfig is re-exported here via
// a type alias for convenience.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapnodes/internal/config"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = sharedcfg.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string                    `koanf:"state_path"`
	RecordRuns   bool                      `koanf:"record_runs"`
	Environment  string                    `koanf:"environment"`
	Verbose      bool                      `koanf:"verbose"`
	LogLevel     string                    `koanf:"log_level"`
	OutputFormat string                    `koanf:"output"`
	Target       *TargetConfig             `koanf:"target"`
	Nodes        map[string]map[string]any `koanf:"nodes"`
	Environments map[string]EnvConfig      `koanf:"environments"`

	// ProjectRoot is the directory holding leapnodes.yaml, or the working
	// directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
}

// Default configuration values.
const (
	DefaultStateFile = sharedcfg.DefaultStateFile
	DefaultEnv       = "dev"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
)

// Project returns the shared project view of the CLI configuration.
func (c *Config) Project() *sharedcfg.ProjectConfig {
	return &sharedcfg.ProjectConfig{
		StatePath: c.StatePath,
		Target:    c.Target,
		Nodes:     c.Nodes,
	}
}
