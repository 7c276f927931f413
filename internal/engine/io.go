package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// Input selects the table a node runs on.
// Exactly one of CSVPath and Query must be set.
type Input struct {
	CSVPath string
	Query   string
	// Kinds overrides inferred column types by name, e.g. smiles=smiles.
	Kinds map[string]core.DataType
}

// LoadInput reads the input table through the database adapter.
// A CSV file is first loaded into a table named after the file.
func (e *Engine) LoadInput(ctx context.Context, in Input) (*core.Table, error) {
	switch {
	case in.CSVPath != "" && in.Query != "":
		return nil, errors.New("input: set either a CSV file or a query, not both")
	case in.CSVPath == "" && in.Query == "":
		return nil, errors.New("input: a CSV file or a query is required")
	}

	db, err := e.ensureDB(ctx)
	if err != nil {
		return nil, err
	}

	query := in.Query
	if in.CSVPath != "" {
		name := TableNameForFile(in.CSVPath)
		if err := db.LoadCSV(ctx, name, in.CSVPath); err != nil {
			return nil, err
		}
		query = "SELECT * FROM " + name
		e.logger.Debug("csv staged", slog.String("file", in.CSVPath), slog.String("table", name))
	}

	t, err := db.ReadTable(ctx, query, in.Kinds)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return t, nil
}

// WriteOutput replaces the named database table with t.
func (e *Engine) WriteOutput(ctx context.Context, name string, t *core.Table) error {
	db, err := e.ensureDB(ctx)
	if err != nil {
		return err
	}
	if err := db.WriteTable(ctx, name, t); err != nil {
		return err
	}
	e.logger.Info("output written", slog.String("table", name), slog.Int("rows", t.NumRows()))
	return nil
}

// TableNameForFile derives a SQL identifier from a file name,
// e.g. "data/my-molecules.csv" becomes "my_molecules".
func TableNameForFile(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "t_" + name
	}
	return name
}
