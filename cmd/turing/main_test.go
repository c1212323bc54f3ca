package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "turing version "))
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "add one")
	assert.Contains(t, out, "0^n1^n")

	out, err = execute(t, "presets", "add one")
	require.NoError(t, err)
	assert.Contains(t, out, "name: add one")

	_, err = execute(t, "presets", "busy beaver")
	assert.Error(t, err)
}

func TestRunAndTraceCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "run", "--preset", "add one", "--color", "never", "-q",
		"--trace", "file", "--trace-dir", dir, "--run-id", "r1")
	require.NoError(t, err)
	assert.Equal(t, ">>> Accepted after 7 steps: 100\n", out)

	out, err = execute(t, "trace", "ls", "--trace-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "- r1")

	out, err = execute(t, "trace", "show", "r1", "--trace-dir", dir)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 8)
	assert.Contains(t, out, "Accepted")

	out, err = execute(t, "graph", "--preset", "add one", "--run", "r1", "--trace-dir", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.Contains(t, out, "class ")

	out, err = execute(t, "trace", "rm", "r1", "--trace-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed trace 'r1'")

	_, err = execute(t, "trace", "show", "r1", "--trace-dir", dir)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("states: [s]\naccept: [s]\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("states: [s]\nstart: x\naccept: [y]\n"), 0644))

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = execute(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "bad.yaml is invalid")
	assert.Contains(t, out, `field "start"`)
	assert.Contains(t, out, `field "accept[0]"`)
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", "--preset", "0^n1^n", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "# 0^n1^n")
	assert.Contains(t, out, "## Transitions (10)")
}

func TestUnknownConfig(t *testing.T) {
	_, err := execute(t, "version", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	rootCmd.PersistentFlags().Set("config", "")
}
