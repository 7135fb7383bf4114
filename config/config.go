// Package config loads the flat service configuration from the
// environment, with defaults suitable for local development.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppName            string `mapstructure:"APP_NAME"`
	Port               int    `mapstructure:"PORT"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	PrettyLogs         bool   `mapstructure:"PRETTY_LOGS"`
	StartupMaxAttempts int    `mapstructure:"STARTUP_MAX_ATTEMPTS"`

	// HTTP server
	HttpServerWriteTimeoutSeconds int `mapstructure:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS"`
	HttpServerReadTimeoutSeconds  int `mapstructure:"HTTP_SERVER_READ_TIMEOUT_SECONDS"`
	HttpServerIdleTimeoutSeconds  int `mapstructure:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS"`

	// PostgreSQL
	DatabaseHost                string        `mapstructure:"DB_HOST"`
	DatabasePort                int           `mapstructure:"DB_PORT"`
	DatabaseUserName            string        `mapstructure:"DB_USER_NAME"`
	DatabasePassword            string        `mapstructure:"DB_PASSWORD"`
	DatabaseName                string        `mapstructure:"DB_NAME"`
	DatabaseSSLMode             string        `mapstructure:"DB_SSL_MODE"`
	DatabaseMaxOpenConns        int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DatabaseMaxIdleConns        int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DatabaseConnMaxLifetime     time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DatabaseMigrationFolderPath string        `mapstructure:"DB_MIGRATION_FOLDER_PATH"`
	DatabaseMigrationVersion    int           `mapstructure:"DB_MIGRATION_VERSION"`
	DatabaseMigrationForce      int           `mapstructure:"DB_MIGRATION_FORCE"`

	// Kafka producer
	KafkaBrokers      []string `mapstructure:"KAFKA_BROKERS"`
	KafkaOutputTopic  string   `mapstructure:"KAFKA_OUTPUT_TOPIC"`
	KafkaBatchSize    int      `mapstructure:"KAFKA_BATCH_SIZE"`
	KafkaBatchTimeout int      `mapstructure:"KAFKA_BATCH_TIMEOUT_MS"`
	KafkaRequiredAcks int      `mapstructure:"KAFKA_REQUIRED_ACKS"`
	KafkaCompression  string   `mapstructure:"KAFKA_COMPRESSION"`
	KafkaEnabled      bool     `mapstructure:"KAFKA_ENABLED"`

	// Tracing
	TracingEnabled      bool   `mapstructure:"TRACING_ENABLED"`
	TracingOTLPEndpoint string `mapstructure:"TRACING_OTLP_ENDPOINT"`
	TracingOTLPProtocol string `mapstructure:"TRACING_OTLP_PROTOCOL"`

	// Import pipeline
	ImportWorkerCount int `mapstructure:"IMPORT_WORKER_COUNT"`
}

// Load reads configuration from the environment over the defaults.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "fern-api")
	v.SetDefault("PORT", 3004)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRETTY_LOGS", false)
	v.SetDefault("STARTUP_MAX_ATTEMPTS", 5)

	v.SetDefault("HTTP_SERVER_WRITE_TIMEOUT_SECONDS", 10)
	v.SetDefault("HTTP_SERVER_READ_TIMEOUT_SECONDS", 10)
	v.SetDefault("HTTP_SERVER_IDLE_TIMEOUT_SECONDS", 10)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER_NAME", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "fern")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "10s")
	v.SetDefault("DB_MIGRATION_FOLDER_PATH", "db/pg")
	v.SetDefault("DB_MIGRATION_VERSION", 0)
	v.SetDefault("DB_MIGRATION_FORCE", 0)

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_OUTPUT_TOPIC", "import-events")
	v.SetDefault("KAFKA_BATCH_SIZE", 100)
	v.SetDefault("KAFKA_BATCH_TIMEOUT_MS", 100)
	v.SetDefault("KAFKA_REQUIRED_ACKS", 1)
	v.SetDefault("KAFKA_COMPRESSION", "snappy")
	v.SetDefault("KAFKA_ENABLED", true)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("TRACING_OTLP_PROTOCOL", "grpc")

	v.SetDefault("IMPORT_WORKER_COUNT", 4)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	// comma-separated broker lists from the environment
	if len(cfg.KafkaBrokers) == 1 && strings.Contains(cfg.KafkaBrokers[0], ",") {
		cfg.KafkaBrokers = strings.Split(cfg.KafkaBrokers[0], ",")
	}

	return cfg, nil
}
