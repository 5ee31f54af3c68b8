package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Pricing  PricingConfig
	External ExternalConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`

	TxMaxRetries int           `envconfig:"DB_TX_MAX_RETRIES" default:"3"`
	TxRetryBase  time.Duration `envconfig:"DB_TX_RETRY_BASE" default:"100ms"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type PricingConfig struct {
	TokenSecret          string        `envconfig:"PRICING_TOKEN_SECRET" required:"true"`
	TokenTTL             time.Duration `envconfig:"PRICING_TOKEN_TTL" default:"180s"`
	AlgoVersion          string        `envconfig:"PRICING_ALGO_VERSION" default:"v1"`
	DefaultTariffVersion string        `envconfig:"DEFAULT_TARIFF_VERSION" default:"v1"`
}

type ExternalConfig struct {
	BaseURL            string        `envconfig:"EXTERNAL_BASE_URL" default:"http://localhost:3629"`
	Timeout            time.Duration `envconfig:"EXTERNAL_TIMEOUT" default:"2s"`
	PaymentMaxAttempts int           `envconfig:"PAYMENT_MAX_ATTEMPTS" default:"3"`
}

// Backend selects where order snapshots are cached: "memory" or "redis".
type CacheConfig struct {
	Backend       string        `envconfig:"CACHE_BACKEND" default:"memory"`
	ConfigTTL     time.Duration `envconfig:"CACHE_CONFIG_TTL" default:"60s"`
	ConfigMaxSize int           `envconfig:"CACHE_CONFIG_MAX_SIZE" default:"4"`
	ZoneTTL       time.Duration `envconfig:"CACHE_ZONE_TTL" default:"600s"`
	ZoneMaxSize   int           `envconfig:"CACHE_ZONE_MAX_SIZE" default:"10000"`
	OrderTTL      time.Duration `envconfig:"CACHE_ORDER_TTL" default:"2h"`
	OrderMaxSize  int           `envconfig:"CACHE_ORDER_MAX_SIZE" default:"150000"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Events are published only when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"order-events"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",

			TxMaxRetries: 3,
			TxRetryBase:  10 * time.Millisecond,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Pricing: PricingConfig{
			TokenSecret:          "test-pricing-secret",
			TokenTTL:             180 * time.Second,
			AlgoVersion:          "v1",
			DefaultTariffVersion: "v1",
		},
		External: ExternalConfig{
			BaseURL:            "http://localhost:3629",
			Timeout:            2 * time.Second,
			PaymentMaxAttempts: 3,
		},
		Cache: CacheConfig{
			Backend:       "memory",
			ConfigTTL:     60 * time.Second,
			ConfigMaxSize: 4,
			ZoneTTL:       600 * time.Second,
			ZoneMaxSize:   10000,
			OrderTTL:      2 * time.Hour,
			OrderMaxSize:  150000,
		},
		Kafka: KafkaConfig{
			Topic: "order-events",
		},
	}
}
