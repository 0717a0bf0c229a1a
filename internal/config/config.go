package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	KafkaBrokers     []string
	KafkaTopic       string
	KafkaGroupID     string
	KafkaCreateTopic bool
	PollTimeout      time.Duration
	PollPause        time.Duration
	ShutdownTimeout  time.Duration
	LogLevel         string
}

// DefaultKafkaTopic is the accepted orders topic used when none is configured.
const DefaultKafkaTopic = "order.accepted"

const (
	defaultRunAddress      = ":8080"
	defaultKafkaGroupID    = "order-status"
	defaultPollTimeout     = 5 * time.Second
	defaultPollPause       = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
)

// Load parses configuration from flags and environment variables.
// Values from an optional .env file never override the real environment.
func Load() (*Config, error) {
	envFile := EnvString(os.LookupEnv, "ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

// EnvLookup resolves an environment key, os.LookupEnv in production.
type EnvLookup func(string) (string, bool)

func load(args []string, lookup EnvLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       EnvString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      EnvString(lookup, "DATABASE_URI", ""),
		KafkaTopic:       EnvString(lookup, "KAFKA_TOPIC", DefaultKafkaTopic),
		KafkaGroupID:     EnvString(lookup, "KAFKA_GROUP_ID", defaultKafkaGroupID),
		KafkaCreateTopic: getBool(lookup, "KAFKA_CREATE_TOPIC", false),
		PollTimeout:      getDuration(lookup, "POLL_TIMEOUT", defaultPollTimeout),
		PollPause:        getDuration(lookup, "POLL_PAUSE", defaultPollPause),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:         EnvString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("orderstatus", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr         = EnvString(lookup, "KAFKA_BROKERS", "")
		pollTimeoutStr     = cfg.PollTimeout.String()
		pollPauseStr       = cfg.PollPause.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&brokersStr, "k", brokersStr, "Comma separated Kafka seed brokers")
	fs.StringVar(&cfg.KafkaTopic, "topic", cfg.KafkaTopic, "Accepted orders topic")
	fs.StringVar(&cfg.KafkaGroupID, "group", cfg.KafkaGroupID, "Kafka consumer group")
	fs.BoolVar(&cfg.KafkaCreateTopic, "create-topic", cfg.KafkaCreateTopic, "Create accepted orders topic when missing")
	fs.StringVar(&pollTimeoutStr, "poll-timeout", pollTimeoutStr, "Maximum wait for the next event")
	fs.StringVar(&pollPauseStr, "poll-pause", pollPauseStr, "Pause between consumer iterations")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollTimeout, err = time.ParseDuration(pollTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid poll timeout: %w", err)
	}

	if cfg.PollPause, err = time.ParseDuration(pollPauseStr); err != nil {
		return nil, fmt.Errorf("invalid poll pause: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.KafkaBrokers = SplitList(brokersStr)

	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = defaultPollTimeout
	}

	if cfg.PollPause < 0 {
		cfg.PollPause = defaultPollPause
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = DefaultKafkaTopic
	}

	if cfg.KafkaGroupID == "" {
		cfg.KafkaGroupID = defaultKafkaGroupID
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("kafka brokers must be provided")
	}

	return cfg, nil
}

// SplitList splits comma separated v, dropping blank items.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvString returns the value of key or def when it is unset or empty.
func EnvString(lookup EnvLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup EnvLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup EnvLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
