package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Catalog.TTL)
	assert.Equal(t, "America/Vancouver", cfg.Catalog.Timezone)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.False(t, cfg.Catalog.SeedOnEmpty)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("RABBITMQ_ENABLED", "false")
	t.Setenv("CATALOG_TTL", "5s")
	t.Setenv("SEED_ON_EMPTY", "true")
	t.Setenv("LOG_FORMAT", "text")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Catalog.TTL)
	assert.True(t, cfg.Catalog.SeedOnEmpty)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("CATALOG_TTL", "soon")
	t.Setenv("RABBITMQ_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, 30*time.Second, cfg.Catalog.TTL)
	assert.True(t, cfg.RabbitMQ.Enabled)
}

func TestDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "h", Port: "5433", User: "u", Password: "p", Name: "n", SSLMode: "require",
	}}

	assert.Equal(t, "host=h port=5433 user=u password=p dbname=n sslmode=require", cfg.DSN())
}

func TestLocation(t *testing.T) {
	cfg := &Config{Catalog: CatalogConfig{Timezone: "UTC"}}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Catalog.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}
