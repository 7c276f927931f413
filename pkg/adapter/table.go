package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// InferDataType maps a database column type name to a node data type.
// Unknown types are read as strings.
func InferDataType(dbType string) core.DataType {
	t := strings.ToUpper(strings.TrimSpace(dbType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch t {
	case "BIGINT", "INTEGER", "INT", "INT2", "INT4", "INT8", "SMALLINT", "TINYINT",
		"UBIGINT", "UINTEGER", "USMALLINT", "UTINYINT", "HUGEINT", "SERIAL", "BIGSERIAL":
		return core.TypeInt64
	case "DOUBLE", "DOUBLE PRECISION", "FLOAT", "FLOAT4", "FLOAT8", "REAL", "DECIMAL", "NUMERIC":
		return core.TypeDouble
	case "BOOLEAN", "BOOL":
		return core.TypeBool
	default:
		return core.TypeString
	}
}

// SQLType returns the column type used when writing t to a database.
func SQLType(t core.DataType) string {
	switch t {
	case core.TypeInt64:
		return "BIGINT"
	case core.TypeDouble:
		return "DOUBLE PRECISION"
	case core.TypeBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// ReadTable runs query and materializes its result.
// A leading row_id column, as written by WriteTable, supplies the row IDs
// and is not part of the schema. Otherwise row IDs are assigned in result
// order (Row0, Row1, ...).
func (b *BaseSQLAdapter) ReadTable(ctx context.Context, query string, overrides map[string]core.DataType) (*core.Table, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := b.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	offset := 0
	if len(colTypes) > 0 && colTypes[0].Name() == core.RowIDColumn {
		if _, ok := overrides[core.RowIDColumn]; !ok {
			offset = 1
		}
	}

	cols := make([]core.Column, 0, len(colTypes)-offset)
	for _, ct := range colTypes[offset:] {
		dt := InferDataType(ct.DatabaseTypeName())
		if o, ok := overrides[ct.Name()]; ok {
			dt = o
		}
		cols = append(cols, core.NewColumn(dt, ct.Name()))
	}
	for name := range overrides {
		if !hasColumn(cols, name) {
			return nil, fmt.Errorf("type override for unknown column %q", name)
		}
	}

	schema, err := core.NewSchema(cols...)
	if err != nil {
		return nil, fmt.Errorf("invalid result schema: %w", err)
	}
	table := core.NewTable(schema)

	raw := make([]any, len(colTypes))
	dest := make([]any, len(colTypes))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		id := core.DefaultRowID(table.NumRows())
		if offset == 1 && raw[0] != nil {
			v, err := NormalizeValue(raw[0], core.TypeString)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", table.NumRows(), core.RowIDColumn, err)
			}
			id = v.(string)
		}
		cells := make([]any, len(cols))
		for i, v := range raw[offset:] {
			cell, err := NormalizeValue(v, cols[i].Type)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", table.NumRows(), cols[i].Name, err)
			}
			cells[i] = cell
		}
		if err := table.AppendRow(id, cells...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	b.logger().Debug("read table",
		slog.Int("columns", schema.Len()),
		slog.Int("rows", table.NumRows()))
	return table, nil
}

// WriteTable replaces the named table with the contents of t inside one
// transaction. Row IDs are stored in a leading row_id column.
func (b *BaseSQLAdapter) WriteTable(ctx context.Context, name string, t *core.Table) (err error) {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}

	schema := t.Schema()
	if _, ok := schema.Lookup(core.RowIDColumn); ok {
		return fmt.Errorf("column %q is reserved for row IDs", core.RowIDColumn)
	}
	quoted := QuoteQualifiedName(name)
	idCol := QuoteIdentifier(core.RowIDColumn)
	defs := []string{idCol + " TEXT"}
	names := []string{idCol}
	marks := []string{b.placeholder(1)}
	for i, c := range schema.Columns() {
		n := QuoteIdentifier(c.Name)
		names = append(names, n)
		defs = append(defs, n+" "+SQLType(c.Type))
		marks = append(marks, b.placeholder(i+2))
	}

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoted, strings.Join(defs, ", "))
	if _, err = tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoted, strings.Join(names, ", "), strings.Join(marks, ", "))
	var stmt *sql.Stmt
	stmt, err = tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, schema.Len()+1)
	for _, row := range t.Rows() {
		args[0] = row.ID
		copy(args[1:], row.Cells)
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %s: %w", row.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", name, err)
	}
	b.logger().Debug("wrote table", slog.String("table", name), slog.Int("rows", t.NumRows()))
	return nil
}

// NormalizeValue converts a scanned database value to the cell
// representation of t. nil stays nil.
func NormalizeValue(v any, t core.DataType) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch t {
	case core.TypeInt64:
		return toInt64(v)
	case core.TypeDouble:
		return toFloat64(v)
	case core.TypeBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(x))
		case int64:
			return x != 0, nil
		}
		return nil, fmt.Errorf("cannot convert %T to bool", v)
	default:
		switch x := v.(type) {
		case string:
			return x, nil
		case time.Time:
			return x.Format(time.RFC3339Nano), nil
		case fmt.Stringer:
			return x.String(), nil
		}
		return fmt.Sprint(v), nil
	}
}

func toInt64(v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", x)
		}
		return int64(x), nil
	case *big.Int:
		if !x.IsInt64() {
			return nil, fmt.Errorf("value %s overflows int64", x)
		}
		return x.Int64(), nil
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("value %v is not an integer", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	}
	return nil, fmt.Errorf("cannot convert %T to int64", v)
}

func toFloat64(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case interface{ Float64() (float64, error) }:
		return x.Float64()
	case interface{ Float64() float64 }:
		return x.Float64(), nil
	}
	return nil, fmt.Errorf("cannot convert %T to float64", v)
}

func hasColumn(cols []core.Column, name string) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}
