package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 10, cfg.MaxFilesPerRequest)
	assert.Equal(t, time.Hour, cfg.RetentionWindow)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("MAX_FILES_PER_REQUEST", "5")
	t.Setenv("RETENTION_WINDOW", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 5, cfg.MaxFilesPerRequest)
	assert.Equal(t, 30*time.Minute, cfg.RetentionWindow)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_BYTES", "1")
	t.Setenv("RETENTION_WINDOW", "-1h")
	_, err = Load()
	assert.Error(t, err)
}
