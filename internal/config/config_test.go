package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docqa", cfg.App.Name)
	assert.Equal(t, 1000, cfg.Ingest.DefaultChunkSize)
	assert.Equal(t, 200, cfg.Ingest.DefaultChunkOverlap)
	assert.Equal(t, 5, cfg.Ingest.TopK)
	assert.Equal(t, 50, cfg.MySQL.MaxOpenConns)
	assert.Equal(t, 10, cfg.MySQL.MaxIdleConns)
	assert.Equal(t, "docqa.ingest", cfg.RabbitMQ.IngestQueue)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MYSQL_MAX_OPEN_CONNS", "120")
	t.Setenv("MYSQL_MAX_IDLE_CONNS", "25")
	t.Setenv("INGEST_TOP_K", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 120, cfg.MySQL.MaxOpenConns)
	assert.Equal(t, 25, cfg.MySQL.MaxIdleConns)
	assert.Equal(t, 8, cfg.Ingest.TopK)
}

func TestAddrAndDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, "root:@tcp(127.0.0.1:3306)/docqa?parseTime=true&loc=Local&charset=utf8mb4", cfg.MySQLDSN())
}
