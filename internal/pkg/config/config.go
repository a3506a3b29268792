package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Payment PaymentConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the identity service; only the shared secret is needed here.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type BookingConfig struct {
	SlotCapacity   int           `envconfig:"BOOKING_SLOT_CAPACITY" default:"1"`
	TimeZone       string        `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
	PendingTimeout time.Duration `envconfig:"BOOKING_PENDING_TIMEOUT" default:"15m"`
	SweepInterval  time.Duration `envconfig:"BOOKING_SWEEP_INTERVAL" default:"1m"`
	SweepBatchSize int           `envconfig:"BOOKING_SWEEP_BATCH_SIZE" default:"100"`
	IdempotencyTTL time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
	CleanupEvery   time.Duration `envconfig:"BOOKING_IDEMPOTENCY_CLEANUP_INTERVAL" default:"1h"`
}

type PaymentConfig struct {
	Currency          string        `envconfig:"PAYMENT_CURRENCY" default:"INR"`
	TaxRatePercent    int           `envconfig:"PAYMENT_TAX_RATE_PERCENT" default:"10"`
	DefaultPriceMinor int64         `envconfig:"PAYMENT_DEFAULT_PRICE_MINOR" default:"100000"`
	ProviderTimeout   time.Duration `envconfig:"PAYMENT_PROVIDER_TIMEOUT" default:"5s"`
	MaxRetries        int           `envconfig:"PAYMENT_PROVIDER_MAX_RETRIES" default:"2"`
	RetryBaseDelay    time.Duration `envconfig:"PAYMENT_PROVIDER_RETRY_BASE" default:"200ms"`
}

// Empty Addr disables the slot cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	SlotTTL  time.Duration `envconfig:"REDIS_SLOT_TTL" default:"10m"`
}

// Empty URL keeps the outbox relay in log-only mode.
type AMQPConfig struct {
	URL           string        `envconfig:"AMQP_URL" default:""`
	Exchange      string        `envconfig:"AMQP_EXCHANGE" default:"appointments"`
	RelayInterval time.Duration `envconfig:"AMQP_RELAY_INTERVAL" default:"5s"`
	RelayBatch    int           `envconfig:"AMQP_RELAY_BATCH_SIZE" default:"50"`
	MaxAttempts   int           `envconfig:"AMQP_MAX_ATTEMPTS" default:"5"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Booking.SlotCapacity < 1 {
		return Config{}, fmt.Errorf("BOOKING_SLOT_CAPACITY must be at least 1, got %d", cfg.Booking.SlotCapacity)
	}
	if _, err := cfg.Booking.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-signing-tokens",
			Duration: "1h",
		},
		Booking: BookingConfig{
			SlotCapacity:   1,
			TimeZone:       "UTC",
			PendingTimeout: 15 * time.Minute,
			SweepInterval:  time.Minute,
			SweepBatchSize: 100,
			IdempotencyTTL: 24 * time.Hour,
			CleanupEvery:   time.Hour,
		},
		Payment: PaymentConfig{
			Currency:          "INR",
			TaxRatePercent:    10,
			DefaultPriceMinor: 100000,
			ProviderTimeout:   2 * time.Second,
			MaxRetries:        2,
			RetryBaseDelay:    10 * time.Millisecond,
		},
		Redis: RedisConfig{
			SlotTTL: time.Minute,
		},
		AMQP: AMQPConfig{
			Exchange:      "appointments",
			RelayInterval: time.Second,
			RelayBatch:    50,
			MaxAttempts:   5,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
