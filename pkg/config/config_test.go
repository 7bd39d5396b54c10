package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddr)
	assert.Equal(t, "", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestBuildFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bankfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: 127.0.0.1:8080\nlog_level: debug\n"), 0o644))

	cfg, err := Build(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestBuildMissingExplicitFile(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestBuildEnvOverride(t *testing.T) {
	t.Setenv("BANKFEED_LOG_LEVEL", "warn")
	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestBuildFlagOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "", "")
	require.NoError(t, flags.Set("output-dir", "/tmp/out"))

	cfg, err := Build("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}
