package main

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/textcodec/internal/errors"
)

// resetCLI puts the CLI struct into the state kong would produce with no
// flags given, and restores the previous state when the test finishes.
func resetCLI(t *testing.T) {
	t.Helper()
	originalCLI := CLI
	t.Cleanup(func() { CLI = originalCLI })

	CLI.From = "json"
	CLI.To = "json"
	CLI.Input = ""
	CLI.Output = ""
	CLI.Indent = -1
	CLI.Compact = false
	CLI.Quote = ""
	CLI.FieldSep = ""
	CLI.RowSep = ""
	CLI.Headers = false
	CLI.KeyStyle = ""
	CLI.Config = ""
	CLI.Debug = false
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_JSONReformat(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.Input = writeTempFile(t, tmpDir, "in.json", `{"a":1,"b":[1,2]}`)
	CLI.Output = filepath.Join(tmpDir, "out.json")
	CLI.Indent = 2

	require.NoError(t, run(newLogger(false)))

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}", string(out))
}

func TestRun_JSONCompact(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.Input = writeTempFile(t, tmpDir, "in.json", "{ \"a\" : 1 ,\n \"b\" : null }")
	CLI.Output = filepath.Join(tmpDir, "out.json")
	CLI.Compact = true

	require.NoError(t, run(newLogger(false)))

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":null}`, string(out))
}

func TestRun_CSVToJSONWithHeaders(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.From = "csv"
	CLI.To = "json"
	CLI.Input = writeTempFile(t, tmpDir, "in.csv", "User Name,Age\nada,36\n")
	CLI.Output = filepath.Join(tmpDir, "out.json")
	CLI.Headers = true
	CLI.KeyStyle = "snake"
	CLI.Compact = true

	require.NoError(t, run(newLogger(false)))

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, `[{"user_name":"ada","age":"36"}]`, string(out))
}

func TestRun_JSONToCSV(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.From = "json"
	CLI.To = "csv"
	CLI.Input = writeTempFile(t, tmpDir, "in.json", `[{"name":"ada","note":"a,b"},{"name":"grace"}]`)
	CLI.Output = filepath.Join(tmpDir, "out.csv")

	require.NoError(t, run(newLogger(false)))

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "name,note\nada,\"a,b\"\ngrace,", string(out))
}

func TestRun_CSVTranscodeDialect(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.From = "csv"
	CLI.To = "csv"
	CLI.Input = writeTempFile(t, tmpDir, "in.csv", "a;b\nc;\"d;e\"")
	CLI.Output = filepath.Join(tmpDir, "out.csv")
	CLI.FieldSep = ";"

	require.NoError(t, run(newLogger(false)))

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "a;b\nc;\"d;e\"", string(out))
}

func TestRun_InvalidJSONInput(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.Input = writeTempFile(t, tmpDir, "in.json", `{"a": }`)

	err := run(newLogger(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON input")
}

func TestRun_MissingInputFile(t *testing.T) {
	resetCLI(t)
	CLI.Input = filepath.Join(t.TempDir(), "does-not-exist.json")

	err := run(newLogger(false))
	require.Error(t, err)
}

func TestRun_BlankInputPath(t *testing.T) {
	resetCLI(t)
	CLI.Input = "   "

	err := run(newLogger(false))
	require.Error(t, err)
	assert.True(t, goerrors.Is(err, errors.ErrInvalidFilePath))
}

func TestRun_ConfigFile(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.Config = writeTempFile(t, tmpDir, ".textcodec.yml", "json:\n  indent: 4\n")
	CLI.Input = writeTempFile(t, tmpDir, "in.json", `[1]`)
	CLI.Output = filepath.Join(tmpDir, "out.json")

	require.NoError(t, run(newLogger(false)))

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "[\n    1\n]", string(out))
}

func TestRun_ConflictingDialectRejected(t *testing.T) {
	resetCLI(t)
	tmpDir := t.TempDir()

	CLI.From = "csv"
	CLI.Input = writeTempFile(t, tmpDir, "in.csv", "a,b")
	CLI.Quote = ","

	err := run(newLogger(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
