package output

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewRendererWithTTY(out, &bytes.Buffer{}, isTTY, mode), out
}

func sampleTable() *core.Table {
	t := core.NewTable(core.MustSchema(
		core.NewColumn(core.TypeString, "name"),
		core.NewColumn(core.TypeInt64, "count"),
	))
	t.MustAppendRow("Row0", "ethanol", int64(0)).MustAppendRow("Row1", "broken", nil)
	return t
}

func TestMode(t *testing.T) {
	tests := map[string]OutputMode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"TEXT":     ModeText,
		"md":       ModeMarkdown,
		"markdown": ModeMarkdown,
		"json":     ModeJSON,
		"yml":      ModeYAML,
		"csv":      ModeCSV,
		"bogus":    ModeAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, Mode(in), in)
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	r, _ := newTestRenderer(ModeAuto, true)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _ = newTestRenderer(ModeAuto, false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r, _ = newTestRenderer(ModeJSON, true)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
}

func TestRenderer_Table(t *testing.T) {
	tests := []struct {
		mode     OutputMode
		contains []string
	}{
		{ModeText, []string{"row_id", "ethanol", "?", "(2 rows)"}},
		{ModeMarkdown, []string{"| row_id |", "| Row0 | ethanol | 0 |", "(2 rows)"}},
		{ModeCSV, []string{"row_id,name,count", "Row1,broken,?"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, out := newTestRenderer(tt.mode, false)
			require.NoError(t, r.Table(sampleTable()))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRenderer_Table_JSON(t *testing.T) {
	r, out := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.Table(sampleTable()))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Row0", records[0][RowIDColumn])
	assert.Equal(t, "ethanol", records[0]["name"])
	assert.Nil(t, records[1]["count"])
}

func TestRenderer_Table_NonFinite(t *testing.T) {
	tbl := core.NewTable(core.MustSchema(
		core.NewColumn(core.TypeDouble, "coefficients"),
		core.NewColumn(core.TypeDouble, "t_value"),
		core.NewColumn(core.TypeDouble, "p_value"),
	))
	tbl.MustAppendRow("const", 0.0, math.NaN(), math.NaN()).
		MustAppendRow("x", 2.0, math.Inf(1), 0.0).
		MustAppendRow("z", 1.0, math.Inf(-1), nil)

	r, out := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.Table(tbl))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "NaN", records[0]["t_value"])
	assert.Equal(t, "NaN", records[0]["p_value"])
	assert.Equal(t, "+Inf", records[1]["t_value"])
	assert.InDelta(t, 2.0, records[1]["coefficients"], 1e-12)
	assert.Equal(t, "-Inf", records[2]["t_value"])
	assert.Nil(t, records[2]["p_value"])

	r, out = newTestRenderer(ModeYAML, false)
	require.NoError(t, r.Table(tbl))
	assert.Contains(t, out.String(), "NaN")

	r, out = newTestRenderer(ModeText, false)
	require.NoError(t, r.Table(tbl))
	assert.Contains(t, out.String(), "+Inf")
}

func TestRenderer_Structured_YAML(t *testing.T) {
	r, out := newTestRenderer(ModeYAML, false)

	ok, err := r.Structured(SchemaOutput{
		Node:    "text-proc-table",
		Columns: []core.Column{core.NewColumn(core.TypeSMILES, "smiles")},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	var decoded struct {
		Node    string `yaml:"node"`
		Columns []struct {
			Name string `yaml:"name"`
			Type string `yaml:"type"`
		} `yaml:"columns"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "text-proc-table", decoded.Node)
	require.Len(t, decoded.Columns, 1)
	assert.Equal(t, "smiles", decoded.Columns[0].Type)

	r, _ = newTestRenderer(ModeText, false)
	ok, err = r.Structured(struct{}{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderer_KeyValue(t *testing.T) {
	r, out := newTestRenderer(ModeMarkdown, false)
	r.KeyValue("Node", "stats-table")
	assert.Equal(t, "- **Node**: stats-table\n", out.String())

	r, out = newTestRenderer(ModeText, false)
	r.KeyValue("Node", "stats-table")
	assert.Equal(t, "Node: stats-table\n", out.String())
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "?", FormatCell(nil))
	assert.Equal(t, "0.5", FormatCell(0.5))
	assert.Equal(t, "3", FormatCell(int64(3)))
	assert.Equal(t, "true", FormatCell(true))
	assert.Equal(t, "CCO", FormatCell("CCO"))
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# Nodes", FormatHeader(1, "Nodes"))
	assert.Equal(t, "## Ports", FormatHeader(2, "Ports"))
	assert.Equal(t, "# X", FormatHeader(0, "X"))
}
