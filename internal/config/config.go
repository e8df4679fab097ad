package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
// The same config feeds both the etl service and the collector; each reads
// the subset it needs.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// NOAA text product fetching (collector).
	NOAABaseURL      string
	NOAATimeout      time.Duration
	NOAACacheSize    int
	NOAACacheTTL     time.Duration
	FetchStations    []string
	FetchReportTypes []string
	FetchInterval    time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	noaaTimeout, err := parsePositiveDuration("NOAA_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	httpReadTimeout, err := parsePositiveDuration("HTTP_READ_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := parsePositiveDuration("HTTP_WRITE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchInterval, err := parsePositiveDuration("FETCH_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}

	flushInterval, err := parsePositiveDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("NOAA_CACHE_SIZE", 500)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("NOAA_CACHE_TTL", "30m")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "raw-mos-bulletins"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "decoded-mos-reports"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "mos-data-etl"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		HTTPReadTimeout:    httpReadTimeout,
		HTTPWriteTimeout:   httpWriteTimeout,
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		NOAABaseURL:      envOrDefault("NOAA_BASE_URL", "https://www.nws.noaa.gov/cgi-bin/mos"),
		NOAATimeout:      noaaTimeout,
		NOAACacheSize:    cacheSize,
		NOAACacheTTL:     cacheTTL,
		FetchStations:    splitList(os.Getenv("FETCH_STATIONS")),
		FetchReportTypes: splitList(envOrDefault("FETCH_REPORT_TYPES", "mav,mex")),
		FetchInterval:    fetchInterval,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// envOrDefault returns the environment value for key, or fallback when unset
// or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
