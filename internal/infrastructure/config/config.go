package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Password PasswordConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Log      LogConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type DatabaseConfig struct {
	Host              string        `envconfig:"DB_HOST" default:"localhost"`
	Port              int           `envconfig:"DB_PORT" default:"5432"`
	User              string        `envconfig:"DB_USER" required:"true"`
	Password          string        `envconfig:"DB_PASSWORD" required:"true"`
	Name              string        `envconfig:"DB_NAME" required:"true"`
	SSLMode           string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns      int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns      int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime   time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime   time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
	ConnectTimeout    time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`

	SlowQueryThreshold time.Duration `envconfig:"DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type PasswordConfig struct {
	HashCost int `envconfig:"PASSWORD_HASH_COST" default:"10"`
}

// CacheConfig controls the redis read-through cache in front of user lookups by id.
type CacheConfig struct {
	Enabled bool          `envconfig:"CACHE_ENABLED" default:"false"`
	UserTTL time.Duration `envconfig:"CACHE_USER_TTL" default:"5m"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
