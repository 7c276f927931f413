package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		wantErr string
	}{
		{
			name: "valid",
			cols: []Column{NewColumn(TypeString, "name"), NewColumn(TypeInt64, "age")},
		},
		{
			name: "empty schema",
		},
		{
			name:    "duplicate name",
			cols:    []Column{NewColumn(TypeString, "a"), NewColumn(TypeDouble, "a")},
			wantErr: `duplicate column name "a"`,
		},
		{
			name:    "empty name",
			cols:    []Column{NewColumn(TypeString, "")},
			wantErr: "column name must not be empty",
		},
		{
			name:    "unknown type",
			cols:    []Column{{Name: "x"}},
			wantErr: `column "x" has unknown type`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema(tt.cols...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.cols), s.Len())
		})
	}
}

func TestSchema_Lookup(t *testing.T) {
	s := MustSchema(NewColumn(TypeString, "name"), NewColumn(TypeSMILES, "mol"))

	assert.Equal(t, 1, s.Index("mol"))
	assert.Equal(t, -1, s.Index("missing"))

	col, ok := s.Lookup("mol")
	require.True(t, ok)
	assert.Equal(t, TypeSMILES, col.Type)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSchema_Append(t *testing.T) {
	base := MustSchema(NewColumn(TypeString, "name"))

	appended, err := base.Append(NewColumn(TypeInt64, "count"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count"}, appended.Names())
	assert.Equal(t, 1, base.Len(), "append must not modify the receiver")

	_, err = base.Append(NewColumn(TypeInt64, "name"))
	assert.Error(t, err, "appending a duplicate name should fail")
}

func TestSchema_Equal(t *testing.T) {
	a := MustSchema(NewColumn(TypeString, "x"), NewColumn(TypeDouble, "y"))

	assert.True(t, a.Equal(MustSchema(NewColumn(TypeString, "x"), NewColumn(TypeDouble, "y"))))
	assert.False(t, a.Equal(MustSchema(NewColumn(TypeDouble, "y"), NewColumn(TypeString, "x"))), "order matters")
	assert.False(t, a.Equal(MustSchema(NewColumn(TypeString, "x"), NewColumn(TypeInt64, "y"))), "types matter")
	assert.False(t, a.Equal(MustSchema(NewColumn(TypeString, "x"))), "length matters")
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in   string
		want DataType
	}{
		{"int64", TypeInt64},
		{"INTEGER", TypeInt64},
		{"double", TypeDouble},
		{"bool", TypeBool},
		{" string ", TypeString},
		{"smiles", TypeSMILES},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDataType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDataType("blob")
	assert.Error(t, err)
}
