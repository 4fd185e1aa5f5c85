package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, DefaultLargest, v.GetInt("largest"))
	assert.Equal(t, DefaultCPU, v.GetInt("cpu"))
	assert.Equal(t, DefaultPingTarget, v.GetString("ping_target"))
	assert.False(t, v.GetBool("no_color"))
	assert.False(t, v.GetBool("no_temp"))
	assert.False(t, v.GetBool("no_nvidia"))
	assert.Equal(t, "info", v.GetString("logging.level"))
	assert.NotEmpty(t, v.GetString("path"))
}

func TestLoadDefaults(t *testing.T) {
	// Point config loading at an empty directory so only defaults apply.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLargest, cfg.Largest)
	assert.Equal(t, DefaultCPU, cfg.CPU)
	assert.Equal(t, DefaultPingTarget, cfg.PingTarget)
	assert.Equal(t, DefaultExclusions, cfg.Exclude)
	assert.False(t, cfg.NoColor)
}

func TestLoadFromFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "infodump")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := []byte("largest: 10\ncpu: 7\nping_target: 9.9.9.9\nno_temp: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Largest)
	assert.Equal(t, 7, cfg.CPU)
	assert.Equal(t, "9.9.9.9", cfg.PingTarget)
	assert.True(t, cfg.NoTemp)
	// Unset keys fall back to defaults.
	assert.Equal(t, DefaultPath(), cfg.Path)
	assert.False(t, cfg.NoNvidia)
}

func TestLoadExplicitFile(t *testing.T) {
	// An explicit path bypasses the XDG search entirely.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := []byte("largest: 12\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Largest)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("INFODUMP_LARGEST", "25")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Largest)
}

func TestDefaultPathFallsBackToHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}
	assert.Equal(t, home, DefaultPath())
}
