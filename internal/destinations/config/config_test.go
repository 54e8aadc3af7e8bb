package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-passphrase")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDBURI)
	assert.Equal(t, "lovejourney", cfg.DatabaseName)
	assert.Equal(t, 5*time.Second, cfg.ConnectRetryDelay)
	assert.Equal(t, "test-passphrase", cfg.AdminSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "journeys")
	t.Setenv("CONNECT_RETRY_DELAY", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDBURI)
	assert.Equal(t, "journeys", cfg.DatabaseName)
	assert.Equal(t, 250*time.Millisecond, cfg.ConnectRetryDelay)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
