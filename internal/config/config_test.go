package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "POSTGRES_ADDR", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"POSTGRES_DB", "POSTGRES_SSLMODE", "APP_ENV", "RABBITMQ_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadPrefersDatabaseURL(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/eventhub?sslmode=disable")
	t.Setenv("POSTGRES_ADDR", "ignored:5432")
	t.Setenv("POSTGRES_USER", "ignored")
	t.Setenv("POSTGRES_DB", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:secret@db:5432/eventhub?sslmode=disable", cfg.DBDSN)
}

func TestLoadBuildsDSNFromParts(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("POSTGRES_ADDR", "db:5432")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "p@ss/word")
	t.Setenv("POSTGRES_DB", "eventhub")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/eventhub?sslmode=disable", cfg.DBDSN)
}

func TestLoadDefaults(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/eventhub")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheEventTTL)
	assert.True(t, cfg.RLEnabled)
	assert.Equal(t, 100, cfg.RLLimit)
	assert.Equal(t, time.Minute, cfg.RLWindow)
	assert.Equal(t, "eventhub.events", cfg.RabbitExchange)
	assert.Equal(t, "http://localhost:9090", cfg.StatsURL)
	assert.Equal(t, "eventhub", cfg.AppName)
}

func TestLoadFailsWithoutDatabase(t *testing.T) {
	clearDBEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRequiresRabbitOutsideDev(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/eventhub")
	t.Setenv("APP_ENV", "prod")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RABBITMQ_URL")

	t.Setenv("RABBITMQ_URL", "amqp://guest:guest@mq:5672/")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitURL)
}

func TestLoadStat(t *testing.T) {
	for _, k := range []string{"STAT_DATABASE_URL", "STAT_POSTGRES_ADDR", "STAT_POSTGRES_USER", "STAT_POSTGRES_DB"} {
		t.Setenv(k, "")
	}

	t.Run("fails without a database", func(t *testing.T) {
		_, err := LoadStat()
		assert.Error(t, err)
	})

	t.Run("uses STAT_ prefixed settings", func(t *testing.T) {
		t.Setenv("STAT_DATABASE_URL", "postgres://stat@db:5432/stat")
		t.Setenv("STAT_PORT", "9191")

		cfg, err := LoadStat()
		require.NoError(t, err)
		assert.Equal(t, 9191, cfg.Port)
		assert.Equal(t, "postgres://stat@db:5432/stat", cfg.DBDSN)
		assert.Equal(t, 300, cfg.RLLimit)
	})
}

func TestBuildPostgresURL(t *testing.T) {
	t.Run("needs addr user and db", func(t *testing.T) {
		assert.Empty(t, buildPostgresURL("", "app", "x", "db", "disable"))
		assert.Empty(t, buildPostgresURL("db:5432", "", "x", "db", "disable"))
		assert.Empty(t, buildPostgresURL("db:5432", "app", "x", "", "disable"))
	})

	t.Run("omits the password when empty", func(t *testing.T) {
		got := buildPostgresURL("db:5432", "app", "", "eventhub", "require")
		assert.Equal(t, "postgres://app@db:5432/eventhub?sslmode=require", got)
	})
}

func TestGetHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 42, getInt("X_INT", 42))

	t.Setenv("X_BOOL", "on")
	assert.True(t, getBool("X_BOOL", false))
	t.Setenv("X_BOOL", "off")
	assert.False(t, getBool("X_BOOL", true))

	t.Setenv("X_DUR", "90s")
	assert.Equal(t, 90*time.Second, getDuration("X_DUR", time.Minute))
	t.Setenv("X_DUR", "soon")
	assert.Equal(t, time.Minute, getDuration("X_DUR", time.Minute))
}
