package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/Temutjin2k/agro-insurance/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		ServiceName string `env:"SERVICE_NAME" default:"agro-insurance"`

		Server   ServerConfig
		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		Cache    CacheConfig
		MCP      MCPConfig
		Log      LogConfig
	}

	ServerConfig struct {
		Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
		Port            string        `env:"SERVER_PORT" default:"8000"`
		ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"10s"`
		IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
		ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	DatabaseConfig struct {
		// URL is the connection string of the hosted database. When set, the parts below are ignored.
		URL string `env:"DATABASE_URL"`

		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"insurance_user"`
		Password string `env:"DATABASE_PASSWORD" default:"insurance_pass"`
		Database string `env:"DATABASE_DATABASE" default:"insurance_db"`
		SSLMode  string `env:"DATABASE_SSLMODE" default:"disable"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
		Exchange string `env:"RABBITMQ_EXCHANGE" default:"insurance_topic"`
		// QueueSize bounds the changes waiting for delivery; further changes are dropped.
		QueueSize int `env:"RABBITMQ_QUEUE_SIZE" default:"1024"`
	}

	CacheConfig struct {
		// PointsTTL is how long the nearest-point candidate set is reused. Zero disables caching.
		PointsTTL time.Duration `env:"CACHE_POINTS_TTL" default:"30s"`
	}

	MCPConfig struct {
		Enabled  bool   `env:"MCP_ENABLED" default:"true"`
		BasePath string `env:"MCP_BASE_PATH" default:"/llm"`
		BaseURL  string `env:"MCP_BASE_URL" default:"http://localhost:8000"`
	}

	LogConfig struct {
		Level      string `env:"LOG_LEVEL" default:"INFO"`
		File       string `env:"LOG_FILE"`
		MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" default:"100"`
		MaxBackups int    `env:"LOG_MAX_BACKUPS" default:"3"`
		MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" default:"28"`
		Compress   bool   `env:"LOG_COMPRESS" default:"true"`
	}
)

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c DatabaseConfig) PoolLimits() (int32, int32, time.Duration, time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}

func (c RabbitMQConfig) GetDSN() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if cfg.MCP.BasePath == "" || cfg.MCP.BasePath[0] != '/' {
		return nil, fmt.Errorf("MCP_BASE_PATH must start with '/': %q", cfg.MCP.BasePath)
	}

	return cfg, nil
}
