package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg := LoadConfig()
	assert.Equal(t, DefaultReporter, cfg.Reporter)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.False(t, cfg.Redacted)
}

func TestLoadConfig_LocalFile(t *testing.T) {
	dir := chdirTemp(t)

	content := "reporter: flatJson\ntheme: mono\nredacted: true\nmachine_name: ci-box\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644))

	cfg := LoadConfig()
	assert.Equal(t, "flatJson", cfg.Reporter)
	assert.Equal(t, "mono", cfg.Theme)
	assert.True(t, cfg.Redacted)
	assert.Equal(t, "ci-box", cfg.MachineName)
}

func TestLoadConfig_BrokenFileFallsBack(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(":\tnot yaml"), 0o644))

	cfg := LoadConfig()
	assert.Equal(t, DefaultReporter, cfg.Reporter)
}

func TestMergeWithFlags_Precedence(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	appCfg := &AppConfig{Reporter: "json", Theme: "default", Redacted: true}
	merged := MergeWithFlags(appCfg, CliFlags{
		Reporter:    "issues",
		Redacted:    false,
		RedactedSet: true,
	})

	assert.Equal(t, "issues", merged.Reporter)
	assert.False(t, merged.Redacted)
	// Flags never touched the original.
	assert.True(t, appCfg.Redacted)
}

func TestMergeWithFlags_NoColorEnvForcesMonoTheme(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	merged := MergeWithFlags(&AppConfig{Reporter: "console", Theme: "default"}, CliFlags{})
	assert.True(t, merged.NoColor)
	assert.Equal(t, "mono", merged.Theme)
}

func TestMergeWithFlags_NoColorAnyValueCounts(t *testing.T) {
	// The convention is presence-based: NO_COLOR=0 still disables color.
	t.Setenv("NO_COLOR", "0")

	merged := MergeWithFlags(&AppConfig{Reporter: "console", Theme: "default"}, CliFlags{})
	assert.True(t, merged.NoColor)
	assert.Equal(t, "mono", merged.Theme)
}
