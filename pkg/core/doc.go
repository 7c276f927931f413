// Package core defines the shared language of the leapnodes system.
//
// This package contains:
//   - Table model (DataType, Column, Schema, Row, Table)
//   - The node lifecycle contract (Node, ConfigurationContext, ExecutionContext)
//   - The error taxonomy shared by nodes and the host (ConfigurationError,
//     ComputationError, SchemaMismatchError, ErrCanceled)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
