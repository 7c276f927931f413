// Package adapter provides the database adapters that feed tables to nodes
// and store their results.
//
// This package contains the contract all adapters implement plus the shared
// database/sql plumbing. Concrete adapters live in pkg/adapters/.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// Config holds configuration for connecting to a database.
type Config struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// Adapter defines the interface that all database adapters must implement.
// It moves node tables in and out of a database.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// LoadCSV loads data from a CSV file into a table.
	// An existing table of the same name is replaced.
	LoadCSV(ctx context.Context, tableName string, filePath string) error

	// ReadTable runs query and materializes the result as a node table.
	// Column types are inferred from the database types unless overridden
	// by column name.
	ReadTable(ctx context.Context, query string, overrides map[string]core.DataType) (*core.Table, error)

	// WriteTable replaces the named database table with the contents of t.
	WriteTable(ctx context.Context, name string, t *core.Table) error

	// DialectName returns the SQL dialect name, e.g. "duckdb".
	DialectName() string
}
