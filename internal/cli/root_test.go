package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := `state_path: .leapnodes/state.db
log_level: error
target:
  type: duckdb
nodes:
  text-proc-table:
    target_column: word
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leapnodes.yaml"), []byte(cfg), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.csv"), []byte("word\nflies\nhopping\n"), 0600))
	return dir
}

func TestRoot_Help(t *testing.T) {
	out, _, err := executeRoot(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"run", "runs", "list", "describe", "configure", "completion", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestRoot_Version(t *testing.T) {
	out, _, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapnodes v"+Version)
}

func TestRoot_Completion(t *testing.T) {
	out, _, err := executeRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leapnodes")
}

func TestRoot_RunAndHistory(t *testing.T) {
	dir := writeProject(t)
	cfgPath := filepath.Join(dir, "leapnodes.yaml")

	out, _, err := executeRoot(t, "--config", cfgPath, "-o", "csv",
		"run", "text-proc-table", "--input", filepath.Join(dir, "words.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Row0,flies,Fli")
	assert.Contains(t, out, "Row1,hopping,Hop")
	assert.FileExists(t, filepath.Join(dir, ".leapnodes", "state.db"))

	out, _, err = executeRoot(t, "--config", cfgPath, "-o", "json", "runs")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "completed"`)
	assert.Contains(t, out, `"target_column": "word"`)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	dir := writeProject(t)
	_, _, err := executeRoot(t, "--config", filepath.Join(dir, "leapnodes.yaml"), "--log-level", "loud", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestRoot_UnknownTarget(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leapnodes.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("target:\n  type: oracle\n"), 0600))

	_, _, err := executeRoot(t, "--config", cfgPath, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
