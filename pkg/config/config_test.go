package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 600, c.Report.DailyBars)
	assert.Equal(t, 60*time.Second, c.Report.Timeout)
	assert.Equal(t, 10*time.Minute, c.Cache.DailyTTL)
	assert.Equal(t, 60.0, c.Analytics.Technical.MAAUpper)
	assert.Equal(t, -0.2, c.Analytics.Event.RVFall)
	assert.Equal(t, "rates", c.Analytics.CARS.PerformingFactor)
	assert.Equal(t, 5, c.Analytics.ETFFactors.NComponents)

	// List defaults stay with the domain packages.
	assert.Empty(t, c.Markets.G10Pairs)
	assert.Empty(t, c.Analytics.Session.Zones)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
environment: prod
server:
  port: 9090
markets:
  g10_pairs: [EURUSD, USDJPY]
analytics:
  cars:
    top_n: 2
  session:
    zones:
      - {name: America, start: 13, end: 0}
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, []string{"EURUSD", "USDJPY"}, c.Markets.G10Pairs)
	assert.Equal(t, 2, c.Analytics.CARS.TopN)
	require.Len(t, c.Analytics.Session.Zones, 1)
	assert.Equal(t, "America", c.Analytics.Session.Zones[0].Name)

	// Untouched keys keep their defaults.
	assert.Equal(t, 52, c.Analytics.CARS.ZWeeks)
	assert.Equal(t, 600, c.Report.DailyBars)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
report:
  daily_bars: 100
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoadRejectsBadFactor(t *testing.T) {
	path := writeConfig(t, `
analytics:
  cars:
    performing_factor: momentum
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("PAIRS", "EURUSD,GBPUSD")
	t.Setenv("PORT", "9999")

	c, err := LoadWithEnv("")
	require.NoError(t, err)

	assert.Equal(t, "ch.internal", c.ClickHouse.Host)
	assert.Equal(t, "redis.internal:6380", c.Cache.Redis.Addr)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, []string{"EURUSD", "GBPUSD"}, c.Markets.G10Pairs)
	assert.Equal(t, 9999, c.Server.Port)
}
