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
	for _, k := range []string{"APP_ENV", "APP_PORT", "SEAT_ROWS", "SEAT_COLS", "BASE_PRICE_CENTS", "ELEVATED_PRICE_CENTS", "CONSOLE_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.SeatRows)
	assert.Equal(t, 5, cfg.SeatCols)
	assert.Equal(t, uint32(1500), cfg.BasePriceCents)
	assert.Equal(t, uint32(1800), cfg.ElevatedPriceCents)
	assert.False(t, cfg.ConsoleEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEAT_ROWS", "4")
	t.Setenv("SEAT_COLS", "not-a-number")
	t.Setenv("CONSOLE_ENABLED", "yes")
	t.Setenv("RABBITMQ_URL", "amqp://u:p@broker:5672/")

	cfg := Load()
	assert.Equal(t, 4, cfg.SeatRows)
	assert.Equal(t, 5, cfg.SeatCols, "invalid ints fall back to the default")
	assert.True(t, cfg.ConsoleEnabled)
	assert.Equal(t, "amqp://u:p@broker:5672/", cfg.RabbitMQURL)
}

func TestValidate(t *testing.T) {
	ok := Config{SeatRows: 3, SeatCols: 5, BasePriceCents: 1500, ElevatedPriceCents: 1800}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.SeatRows = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.ElevatedPriceCents = 1000
	assert.Error(t, bad.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	const key = "CINEMATCH_DOTENV_PROBE"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}

func TestLoad_RejectsNegativePrices(t *testing.T) {
	t.Setenv("BASE_PRICE_CENTS", "-1")
	t.Setenv("ELEVATED_PRICE_CENTS", "1800")

	cfg := Load()
	assert.Equal(t, uint32(0), cfg.BasePriceCents)
	assert.Error(t, cfg.Validate())

	t.Setenv("BASE_PRICE_CENTS", "1500")
	t.Setenv("ELEVATED_PRICE_CENTS", "-5")
	cfg = Load()
	assert.Equal(t, uint32(0), cfg.ElevatedPriceCents)
	assert.Error(t, cfg.Validate())
}
