package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-mos-bulletins", cfg.KafkaSourceTopic)
	assert.Equal(t, "decoded-mos-reports", cfg.KafkaSinkTopic)
	assert.Equal(t, "mos-data-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, "https://www.nws.noaa.gov/cgi-bin/mos", cfg.NOAABaseURL)
	assert.Equal(t, 10*time.Second, cfg.NOAATimeout)
	assert.Equal(t, 500, cfg.NOAACacheSize)
	assert.Equal(t, 30*time.Minute, cfg.NOAACacheTTL)
	assert.Empty(t, cfg.FetchStations)
	assert.Equal(t, []string{"mav", "mex"}, cfg.FetchReportTypes)
	assert.Equal(t, time.Hour, cfg.FetchInterval)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")
	t.Setenv("HTTP_WRITE_TIMEOUT", "15s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("NOAA_BASE_URL", "http://localhost:9999/mos")
	t.Setenv("NOAA_TIMEOUT", "5s")
	t.Setenv("NOAA_CACHE_SIZE", "50")
	t.Setenv("NOAA_CACHE_TTL", "15m")
	t.Setenv("FETCH_STATIONS", "KJFK, KBOS ,KSFO")
	t.Setenv("FETCH_REPORT_TYPES", "mav")
	t.Setenv("FETCH_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, "http://localhost:9999/mos", cfg.NOAABaseURL)
	assert.Equal(t, 5*time.Second, cfg.NOAATimeout)
	assert.Equal(t, 50, cfg.NOAACacheSize)
	assert.Equal(t, 15*time.Minute, cfg.NOAACacheTTL)
	assert.Equal(t, []string{"KJFK", "KBOS", "KSFO"}, cfg.FetchStations)
	assert.Equal(t, []string{"mav"}, cfg.FetchReportTypes)
	assert.Equal(t, 30*time.Minute, cfg.FetchInterval)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "zero")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidFetchInterval(t *testing.T) {
	t.Setenv("FETCH_INTERVAL", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_INTERVAL")
}
