package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SHIFTTAP_STATE_FILE", "SHIFTTAP_OUTPUT_DIR", "SHIFTTAP_PAGE_SIZE", "SHIFTTAP_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromWritesTemplateOnFirstRun(t *testing.T) {
	clearEnv(t)
	base := filepath.Join(t.TempDir(), ".shifttap")

	cfg, err := LoadFrom(base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, DefaultStateFile), cfg.StateFile)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)

	data, err := os.ReadFile(filepath.Join(base, "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"page_size": "A4"`)

	// The template itself must parse.
	parsed, err := parse(data)
	require.NoError(t, err)
	assert.Equal(t, "state.json", parsed.StateFile)
}

func TestLoadFromParsesCommentsAndTrailingCommas(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	content := `{
  // where the app export lives
  "state_file": "exports/latest.json",
  /* US paper */
  "page_size": "Letter",
  "log_level": "debug",
}`
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.json"), []byte(content), 0o600))

	cfg, err := LoadFrom(base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "exports", "latest.json"), cfg.StateFile)
	assert.Equal(t, "Letter", cfg.PageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".", cfg.OutputDir, "unset fields keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "state.json")
	t.Setenv("SHIFTTAP_STATE_FILE", abs)
	t.Setenv("SHIFTTAP_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("SHIFTTAP_PAGE_SIZE", "Legal")
	t.Setenv("SHIFTTAP_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(base)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.StateFile)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, "Legal", cfg.PageSize)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFromRejectsBrokenFile(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.json"), []byte(`{"page_size": `), 0o600))

	_, err := LoadFrom(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestBaseDirHonoursHomeEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := BaseDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{PageSize: "Napkin", LogLevel: "loud"}
	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"state_file", "output_dir", "page_size", "log level"} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
}

func TestValidatePageSizeIsCaseInsensitive(t *testing.T) {
	cfg := Config{StateFile: "s.json", OutputDir: ".", PageSize: "letter", LogLevel: "info"}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsPagesTooSmallForTheReport(t *testing.T) {
	for _, size := range []string{"A5", "A6"} {
		cfg := Config{StateFile: "s.json", OutputDir: ".", PageSize: size, LogLevel: "info"}
		err := cfg.Validate()
		require.Error(t, err, size)
		assert.Contains(t, err.Error(), "page_size")
	}
}
