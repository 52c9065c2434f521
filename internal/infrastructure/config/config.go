package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	// BusinessID is used when a request and its token carry no business.
	BusinessID string `env:"BUSINESS_ID, default=default"`
	// EventWorkers is the number of sharded event publishing workers.
	EventWorkers int `env:"EVENT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	Kafka KafkaConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=salon_booking"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// KafkaConfig is optional; with no brokers events are only logged.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC, default=appointments"`
}

// PortalConfig configures the portal client.
type PortalConfig struct {
	APIURL     string `env:"PORTAL_API_URL,     default=http://localhost:8080/api"`
	BusinessID string `env:"PORTAL_BUSINESS_ID, default=default"`
	LogLevel   string `env:"LOG_LEVEL,          default=warn"`

	// Each flag selects the in-memory backend for one resource.
	MockAuth         bool `env:"PORTAL_MOCK_AUTH,         default=true"`
	MockAppointments bool `env:"PORTAL_MOCK_APPOINTMENTS, default=true"`
	MockServices     bool `env:"PORTAL_MOCK_SERVICES,     default=true"`
	MockStaff        bool `env:"PORTAL_MOCK_STAFF,        default=true"`
	MockSettings     bool `env:"PORTAL_MOCK_SETTINGS,     default=true"`

	MockLatency    time.Duration `env:"PORTAL_MOCK_LATENCY,   default=300ms"`
	RequestTimeout time.Duration `env:"PORTAL_REQUEST_TIMEOUT, default=10s"`

	AppointmentsStaleTime time.Duration `env:"PORTAL_APPOINTMENTS_STALE, default=5m"`
	CatalogStaleTime      time.Duration `env:"PORTAL_CATALOG_STALE,      default=10m"`
	UserStaleTime         time.Duration `env:"PORTAL_USER_STALE,         default=5m"`

	// StoragePath is the JSON file holding tokens between runs; empty keeps them in memory.
	StoragePath string `env:"PORTAL_STORAGE_PATH"`
}

// Load reads the server configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	process(logger, &cfg)
	return &cfg
}

// LoadPortal reads the portal configuration from environment variables.
func LoadPortal(logger zerolog.Logger) *PortalConfig {
	var cfg PortalConfig
	process(logger, &cfg)
	return &cfg
}

func process(logger zerolog.Logger, cfg any) {
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		panic(err)
	}
}
