package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	JWTSecret         string
	TokenTTL          time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          slog.Level
	RabbitMQURL       string
	EventsQueue       string
	ChannelPoolSize   int
	EventWorkers      int
	EventBuffer       int
	OrderNumberPrefix string
	AdminLogin        string
	AdminPassword     string
	BcryptCost        int
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
	defaultEventsQueue       = "storefront.events"
	defaultChannelPoolSize   = 4
	defaultEventWorkers      = 2
	defaultEventBuffer       = 256
	defaultOrderNumberPrefix = "ORD"
)

// Matches golang.org/x/crypto/bcrypt bounds; zero selects the library default.
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,12}$`)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:          getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RabbitMQURL:       getString(lookup, "RABBITMQ_URL", ""),
		EventsQueue:       getString(lookup, "EVENTS_QUEUE", defaultEventsQueue),
		ChannelPoolSize:   getInt(lookup, "CHANNEL_POOL_SIZE", defaultChannelPoolSize),
		EventWorkers:      getInt(lookup, "EVENT_WORKERS", defaultEventWorkers),
		EventBuffer:       getInt(lookup, "EVENT_BUFFER", defaultEventBuffer),
		OrderNumberPrefix: getString(lookup, "ORDER_NUMBER_PREFIX", defaultOrderNumberPrefix),
		AdminLogin:        getString(lookup, "ADMIN_LOGIN", ""),
		AdminPassword:     getString(lookup, "ADMIN_PASSWORD", ""),
		BcryptCost:        getInt(lookup, "BCRYPT_COST", 0),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", defaultLogLevel)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RabbitMQURL, "m", cfg.RabbitMQURL, "RabbitMQ URL for order events")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn, error")
	fs.IntVar(&cfg.EventWorkers, "event-workers", cfg.EventWorkers, "Number of concurrent event publishers")
	fs.StringVar(&cfg.OrderNumberPrefix, "order-prefix", cfg.OrderNumberPrefix, "Order number prefix")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ChannelPoolSize <= 0 {
		cfg.ChannelPoolSize = defaultChannelPoolSize
	}

	if cfg.EventWorkers <= 0 {
		cfg.EventWorkers = defaultEventWorkers
	}

	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	if !prefixPattern.MatchString(cfg.OrderNumberPrefix) {
		return nil, fmt.Errorf("order number prefix must be 1-12 alphanumeric characters, got %q", cfg.OrderNumberPrefix)
	}

	if cfg.BcryptCost != 0 && (cfg.BcryptCost < minBcryptCost || cfg.BcryptCost > maxBcryptCost) {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, cfg.BcryptCost)
	}

	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin login and password must be provided together")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
