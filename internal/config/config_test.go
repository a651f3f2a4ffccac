package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotower/internal/femerr"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, 9.81, p.Gravity)
	assert.True(t, p.NormalizeModeShapes)
	assert.Equal(t, 2, p.NumberOfModes)
	assert.Equal(t, 1, p.Order())
	assert.NoError(t, p.Validate())

	p.PDelta = true
	assert.Equal(t, 2, p.Order())
}

func TestValidate(t *testing.T) {
	p := Default()
	p.Gravity = -1
	assert.ErrorIs(t, p.Validate(), femerr.ErrValue)

	for _, modes := range []int{0, 11} {
		p := Default()
		p.NumberOfModes = modes
		assert.ErrorIs(t, p.Validate(), femerr.ErrValue, modes)
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "params.yaml")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	p.NumberOfModes = 4
	p.PDelta = true
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("number_of_modes: 5\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, p.NumberOfModes)
	assert.Equal(t, 9.81, p.Gravity)
	assert.True(t, p.NormalizeModeShapes)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOTOWER_GRAVITY", "10")
	t.Setenv("GOTOWER_MODES", "7")
	t.Setenv("GOTOWER_P_DELTA", "true")

	p, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.Gravity)
	assert.Equal(t, 7, p.NumberOfModes)
	assert.True(t, p.PDelta)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gravity: [1, 2\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
