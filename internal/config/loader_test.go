package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depmap/internal/config"
)

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("DEPMAP_SCAN_WORKERS", "6")
	t.Setenv("DEPMAP_OUTPUT_DIR", "from-env")

	cfg, err := config.LoadConfig(writeConfig(t, "scan:\n  workers: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Scan.Workers)
	assert.Equal(t, "from-env", cfg.Output.Dir)
}

func TestLoadConfig_DiscoversFileAndDotEnvInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	const key = "DEPMAP_OUTPUT_DISPLAY_CAP"

	t.Cleanup(func() { _ = os.Unsetenv(key) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=7\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".depmap.yaml"), []byte("output:\n  dir: found\n"), 0o600))

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "found", cfg.Output.Dir)
	assert.Equal(t, 7, cfg.Output.DisplayCap)
}
