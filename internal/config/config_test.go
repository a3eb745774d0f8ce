package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, time.Minute, cfg.Scheduler.Interval)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "article-generation-requests", cfg.Kafka.GenerationTopic)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SCHEDULER_INTERVAL", "30s")
	t.Setenv("SCHEDULER_BATCH_SIZE", "10")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.Interval)
	assert.Equal(t, 10, cfg.Scheduler.BatchSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlData := []byte(`
server:
  addr: ":9090"
webhook:
  secret: "s3cret"
kafka:
  brokers: ["localhost:9092"]
`)
	require.NoError(t, os.WriteFile(path, yamlData, 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Webhook.Secret)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "localhost", cfg.Database.Host, "fields absent from the file keep env defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()

	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "development",
			Log:         LogConfig{Level: "info", Format: "json"},
			Auth:        AuthConfig{JWTSecret: "change-me-in-production"},
			Scheduler:   SchedulerConfig{Interval: time.Minute},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown environment", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "qa"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown log level", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Level = "critical"
		assert.Error(t, cfg.Validate())
	})

	t.Run("default secret in production", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "production"
		assert.True(t, cfg.IsProduction())
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = "a-real-secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("default secret outside production", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "staging"
		assert.False(t, cfg.IsProduction())
		assert.NoError(t, cfg.Validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
