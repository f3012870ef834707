package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7ntys/chaos-lab/internal/config"
)

func TestConfigInit_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafe", "config.yaml")

	out, _, err := execute(t, nil, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+path)

	loaded := config.Default()
	require.NoError(t, config.MergeYAMLFile(loaded, path))
	assert.Equal(t, config.Default(), loaded)
}

func TestConfigInit_UsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env-config.yaml")

	_, _, err := execute(t, map[string]string{config.EnvConfigPath: path}, "config", "init")
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestConfigInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := "output:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	_, _, err := execute(t, nil, "--config", path, "config", "init")
	require.ErrorIs(t, err, config.ErrConfigExists)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(data))
}

func TestConfigInit_ForceOverwritesBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [broken\n"), 0o600))

	_, _, err := execute(t, nil, "--config", path, "config", "init", "--force")
	require.NoError(t, err, "init must not need a loadable config")

	loaded := config.Default()
	require.NoError(t, config.MergeYAMLFile(loaded, path))
	assert.Equal(t, config.FormatAuto, loaded.Output.Format)
}

func TestConfigShow_EffectiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: error\n"), 0o600))

	out, _, err := execute(t, map[string]string{
		"CAFE_API_BASE_URL": "http://cafe.internal:9000",
	}, "--config", path, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "base_url: http://cafe.internal:9000")
	assert.Contains(t, out, "level: error")
	assert.Contains(t, out, "addr:")
	assert.Contains(t, out, "8080")
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")

	out, _, err := execute(t, map[string]string{config.EnvConfigPath: missing}, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, missing+" (not found)\n", out)

	present := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(present, []byte("{}\n"), 0o600))

	out, _, err = execute(t, nil, "--config", present, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, present+"\n", out)
}

func TestConfigPath_DefaultNotFound(t *testing.T) {
	out, _, err := execute(t, nil, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(".chaoscafe", "config.yaml")+" (not found)")
}
