package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.URI)
	assert.Equal(t, "applixy", cfg.Store.Database)
	assert.Equal(t, "scholarship", cfg.Feed.Collection)
	assert.Equal(t, "applixy", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "listings", cfg.RabbitMQ.RoutingKey)
	assert.Equal(t, "updates_feed", cfg.RabbitMQ.QueueName)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_STORE_URI", "mongodb://db.internal:27017")

	cfg, err := Load(writeConfig(t, "store:\n  uri: ${TEST_STORE_URI}\n"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Store.URI)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
