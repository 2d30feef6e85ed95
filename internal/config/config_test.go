package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1000, cfg.MaxMoments)
	assert.Equal(t, 5000, cfg.MaxReplies)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV", " Production ")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_MOMENTS", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 10, cfg.MaxMoments)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
max_moments: 25
max_replies: 50
cloudinary_cloud_name: demo
cloudinary_api_key: key
cloudinary_api_secret: secret
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MAX_REPLIES", "75")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 25, cfg.MaxMoments)
	assert.Equal(t, 75, cfg.MaxReplies)
	assert.True(t, cfg.CloudinaryEnabled())
	assert.Equal(t, "moments", cfg.CloudinaryFolder)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", "")
		t.Setenv("MAX_MOMENTS", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", "")
		t.Setenv("MAX_REPLIES", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "MAX_REPLIES")
	})
}
