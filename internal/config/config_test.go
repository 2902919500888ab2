package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_Defaults_When_NoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := LoadConfig()
	assert.Equal(t, "", cfg.Culture)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.CultureFiles)
}

func TestLoadConfig_ReadsLocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".spanfmt.yaml"),
		[]byte("culture: fi-FI\nno_color: true\nculture_files:\n  - cultures/de.yaml\n"), 0o600))
	chdir(t, dir)

	cfg := LoadConfig()
	assert.Equal(t, "fi-FI", cfg.Culture)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, []string{"cultures/de.yaml"}, cfg.CultureFiles)
}

func TestLoadConfig_FallsBackOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".spanfmt.yaml"),
		[]byte("culture: [broken"), 0o600))
	chdir(t, dir)

	cfg := LoadConfig()
	assert.Equal(t, "", cfg.Culture)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SPANFMT_NO_COLOR", "true")
	assert.True(t, envBool(false, "SPANFMT_NO_COLOR", "NO_COLOR"))

	t.Setenv("SPANFMT_NO_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	assert.True(t, envBool(false, "SPANFMT_NO_COLOR", "NO_COLOR"))

	// NO_COLOR convention: any non-empty value counts.
	t.Setenv("NO_COLOR", "yes-please")
	assert.True(t, envBool(false, "SPANFMT_NO_COLOR", "NO_COLOR"))

	t.Setenv("NO_COLOR", "")
	assert.False(t, envBool(false, "SPANFMT_NO_COLOR", "NO_COLOR"))
}
