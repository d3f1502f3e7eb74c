package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	// OwnerAddress is the genesis owner, seeded once into an empty store.
	OwnerAddress string
	// JWTSecret enables bearer token caller identity when set.
	JWTSecret string
	// TrustCallerHeader accepts the caller address header verbatim. Local
	// development only; Load refuses to start without it or JWTSecret.
	TrustCallerHeader bool

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	HistoryPageLimit   int

	DBAutoMigrate     bool
	EnableOutboxRelay bool
}

// Load reads the process environment. A .env file in the working directory is
// applied first when present; variables already set win over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "provenance"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	owner := strings.TrimSpace(os.Getenv("OWNER_ADDRESS"))
	if owner == "" {
		return Config{}, errors.New("OWNER_ADDRESS is required")
	}

	secret := os.Getenv("JWT_SECRET")
	trustHeader := envBool("TRUST_CALLER_HEADER", false)
	if strings.TrimSpace(secret) == "" && !trustHeader {
		return Config{}, errors.New("JWT_SECRET is required unless TRUST_CALLER_HEADER=true")
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		KafkaBrokers: brokers,

		OwnerAddress: owner,
		JWTSecret:         secret,
		TrustCallerHeader: trustHeader,

		OutboxPollInterval: envDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 100),
		HistoryPageLimit:   envInt("HISTORY_PAGE_LIMIT", 0),

		DBAutoMigrate:     envBool("DB_AUTO_MIGRATE", true),
		EnableOutboxRelay: envBool("ENABLE_OUTBOX_RELAY", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
