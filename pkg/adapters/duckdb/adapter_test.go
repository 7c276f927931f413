package duckdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapnodes/internal/testutil"
	"github.com/leapstack-labs/leapnodes/pkg/adapter"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, cfg adapter.Config) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), cfg))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "default path",
			setupPath: func(_ *testing.T) string {
				return ""
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "test.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := tt.setupPath(t)
			adp := connect(t, adapter.Config{Path: dbPath})
			assert.True(t, adp.IsConnected())
			assert.Equal(t, "duckdb", adp.DialectName())

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	tests := []struct {
		name      string
		operation func(ctx context.Context, adp *Adapter) error
	}{
		{
			name: "exec without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.Exec(ctx, "SELECT 1")
			},
		},
		{
			name: "read without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.ReadTable(ctx, "SELECT 1", nil)
				return err
			},
		},
		{
			name: "load csv without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.LoadCSV(ctx, "t", "missing.csv")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.operation(context.Background(), New(nil))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "database connection not established")
		})
	}
}

func TestAdapter_LoadCSV_ReadTable(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, adapter.Config{Path: ":memory:"})

	path := writeCSV(t, "id,name,smiles,score,active\n1,ethanol,CCO,1.5,true\n2,benzene,c1ccccc1,,false\n")
	require.NoError(t, adp.LoadCSV(ctx, "molecules", path))

	tbl, err := adp.ReadTable(ctx, "SELECT * FROM molecules ORDER BY id",
		map[string]core.DataType{"smiles": core.TypeSMILES})
	require.NoError(t, err)

	assert.Equal(t, []core.Column{
		core.NewColumn(core.TypeInt64, "id"),
		core.NewColumn(core.TypeString, "name"),
		core.NewColumn(core.TypeSMILES, "smiles"),
		core.NewColumn(core.TypeDouble, "score"),
		core.NewColumn(core.TypeBool, "active"),
	}, tbl.Schema().Columns())

	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, "Row0", tbl.Row(0).ID)
	assert.Equal(t, []any{int64(1), "ethanol", "CCO", 1.5, true}, tbl.Row(0).Cells)
	assert.Equal(t, []any{int64(2), "benzene", "c1ccccc1", nil, false}, tbl.Row(1).Cells)
}

func TestAdapter_ReadTable_UnknownOverride(t *testing.T) {
	adp := connect(t, adapter.Config{Path: ":memory:"})

	_, err := adp.ReadTable(context.Background(), "SELECT 1 AS x",
		map[string]core.DataType{"y": core.TypeSMILES})
	assert.ErrorContains(t, err, `unknown column "y"`)
}

func TestAdapter_WriteTable(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, adapter.Config{Path: ":memory:"})

	in := core.NewTable(core.MustSchema(
		core.NewColumn(core.TypeSMILES, "smiles"),
		core.NewColumn(core.TypeInt64, "Number of Rotatable Bonds"),
		core.NewColumn(core.TypeDouble, "weight"),
	))
	in.MustAppendRow("butane", "CCCC", int64(1), 58.1).
		MustAppendRow("cyclobutane", "C1CC", nil, nil)

	require.NoError(t, adp.WriteTable(ctx, "results", in))
	// Writing again replaces the table.
	require.NoError(t, adp.WriteTable(ctx, "results", in))

	out, err := adp.ReadTable(ctx, "SELECT * FROM results ORDER BY row_id",
		map[string]core.DataType{"smiles": core.TypeSMILES})
	require.NoError(t, err)

	assert.True(t, in.Schema().Equal(out.Schema()))
	assert.Equal(t, in.Rows(), out.Rows())

	// Selecting data columns only falls back to positional IDs.
	out, err = adp.ReadTable(ctx, "SELECT smiles FROM results ORDER BY row_id", nil)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultRowID(0), out.Row(0).ID)
}

func TestConnect_WithSettings(t *testing.T) {
	adp := connect(t, adapter.Config{
		Path: ":memory:",
		Params: map[string]any{
			"settings": map[string]any{
				"threads": "2",
			},
		},
	})

	tbl, err := adp.ReadTable(context.Background(), "SELECT current_setting('threads') AS threads", nil)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "2", fmt.Sprint(tbl.Row(0).Cells[0]))
}

func TestConnect_InvalidParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), adapter.Config{
		Path:   ":memory:",
		Params: map[string]any{"unknown": true},
	})
	require.Error(t, err)
	assert.False(t, adp.IsConnected())
}

func TestCSVOptions(t *testing.T) {
	assert.Equal(t, ", header=true", csvOptions(nil))
	assert.Equal(t, ", delim=';', header=false", csvOptions(map[string]string{"delim": ";", "HEADER": "False"}))
	assert.Equal(t, ", header=true, quote=''''", csvOptions(map[string]string{"quote": "'"}))
}
