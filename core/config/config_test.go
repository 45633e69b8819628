package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 20, cfg.Server.MaxUploadMB)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, 100, cfg.Import.BatchSize)
	assert.Equal(t, 8, cfg.Import.Workers)
	assert.Equal(t, "unrestricted", cfg.Import.EmptyScopePolicy)
	assert.Equal(t, 10000, cfg.Import.AuditRawLimit)
	assert.Equal(t, "imports", cfg.Storage.ArchivePrefix)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("IMPORT_BATCH_SIZE", "25")
	t.Setenv("IMPORT_EMPTY_SCOPE_POLICY", "deny")
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Import.BatchSize)
	assert.Equal(t, "deny", cfg.Import.EmptyScopePolicy)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_API_KEY=secret\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_API_KEY")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("Driver", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "oracle")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "invalid database driver")
	})

	t.Run("Policy", func(t *testing.T) {
		t.Setenv("IMPORT_EMPTY_SCOPE_POLICY", "maybe")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "empty_scope_policy")
	})
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "import:\n  batch_size: 40\nstorage:\n  bucket: uploads\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("STORAGE_BUCKET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Import.BatchSize)
	assert.Equal(t, "from-env", cfg.Storage.Bucket)
	assert.Equal(t, 8, cfg.Import.Workers)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("import: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "read config file")
}
