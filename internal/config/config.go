package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Dataset sources.
const (
	SourceFile  = "file"
	SourceKafka = "kafka"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DatasetSource     string
	DatasetPath       string
	DatasetFooterRows int

	KafkaBrokers         []string
	KafkaTopic           string
	KafkaSnapshotTimeout time.Duration

	// PieOrder picks the top-countries slices: "grouping" or "count".
	PieOrder string

	// Mapbox reverse geocoding for records without a country.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	snapshotTimeout, err := parsePositiveDuration("KAFKA_SNAPSHOT_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	footerRows, err := strconv.Atoi(sharedcfg.EnvOrDefault("DATASET_FOOTER_ROWS", "3"))
	if err != nil || footerRows < 0 {
		return nil, errors.New("invalid DATASET_FOOTER_ROWS")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8053"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetSource:     sharedcfg.EnvOrDefault("DATASET_SOURCE", SourceFile),
		DatasetPath:       sharedcfg.EnvOrDefault("DATASET_PATH", "earthquake_data_fix.csv"),
		DatasetFooterRows: footerRows,

		KafkaBrokers:         sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:           sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquake-records"),
		KafkaSnapshotTimeout: snapshotTimeout,

		PieOrder: sharedcfg.EnvOrDefault("PIE_ORDER", "grouping"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
	}

	switch cfg.DatasetSource {
	case SourceFile:
		if cfg.DatasetPath == "" {
			return nil, errors.New("DATASET_PATH is required")
		}
	case SourceKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required")
		}
	default:
		return nil, fmt.Errorf("invalid DATASET_SOURCE %q: want %q or %q", cfg.DatasetSource, SourceFile, SourceKafka)
	}

	if cfg.PieOrder != "grouping" && cfg.PieOrder != "count" {
		return nil, fmt.Errorf("invalid PIE_ORDER %q: want \"grouping\" or \"count\"", cfg.PieOrder)
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
