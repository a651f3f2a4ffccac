package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/input"
)

// execute runs the root command with args. Flags keep their values between
// calls, so tests pass every flag they depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gotower v")
}

func TestTemplateToStdout(t *testing.T) {
	out, err := execute(t, "template", "--format", "yaml", "--output=", "--parameters=false")
	require.NoError(t, err)

	f, err := input.Decode(bytes.NewReader([]byte(out)), input.FormatYAML)
	require.NoError(t, err)
	_, err = f.Build()
	require.NoError(t, err)
}

func TestTemplateParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	out, err := execute(t, "template", "--parameters", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	_, err = execute(t, "template", "--parameters", "--output=")
	assert.Error(t, err)
}

func TestSolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.json")
	_, err := execute(t, "template", "--parameters=false", "-o", path)
	require.NoError(t, err)

	out, err := execute(t, "solve", "-f", path, "--output=", "--image=", "--diagram=false", "--quiet", "--modes", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "EIGENFREQUENCIES")
	assert.Contains(t, out, "f2 =")
	assert.NotContains(t, out, "f3 =")
	assert.NotContains(t, out, "MODE SHAPES")

	_, err = execute(t, "solve", "-f", filepath.Join(t.TempDir(), "missing.yaml"), "--output=", "--image=")
	assert.Error(t, err)
}

func TestElement(t *testing.T) {
	out, err := execute(t, "element", "-t", "B_2DOF", "-l", "2", "--area", "1", "--moi", "1",
		"--e", "1", "--mass", "1", "--force=0", "--order", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "STIFFNESS MATRIX K (order 1):")
	assert.Contains(t, out, "MASS MATRIX M:")

	_, err = execute(t, "element", "-t", "B_9DOF", "-l", "2")
	assert.Error(t, err)
}

func TestSection(t *testing.T) {
	out, err := execute(t, "section", "--tube", "1", "--wall", "0.1", "--density", "7850")
	require.NoError(t, err)
	assert.Contains(t, out, "Shape:")
	assert.Contains(t, out, "tube")
	assert.Contains(t, out, "mass per length:")
}
