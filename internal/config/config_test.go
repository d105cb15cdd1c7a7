package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalYAML = `
mongodb:
  uri: mongodb://localhost:27017
jwt:
  secret: test-secret
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "http://localhost:5000", cfg.App.URL)
	assert.Equal(t, "auth_system", cfg.Mongo.Database)
	assert.Equal(t, "users", cfg.Mongo.Collection)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "uploads/profile-pictures", cfg.Storage.UploadDir)

	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_RequiredFields(t *testing.T) {
	t.Run("missing mongo uri", func(t *testing.T) {
		_, err := Load(writeConfig(t, "jwt:\n  secret: s\n"))
		assert.ErrorContains(t, err, "mongodb.uri")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := Load(writeConfig(t, "mongodb:\n  uri: mongodb://localhost:27017\n"))
		assert.ErrorContains(t, err, "jwt.secret")
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("OTP_TTL_MINUTES", "5")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("STORAGE_PUBLIC_READ", "true")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.True(t, cfg.Storage.PublicRead)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
