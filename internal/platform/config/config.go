package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config del servicio. Viene de config.yaml (opcional) con override por env.
// Los secretos (tokens, passwords) solo se leen de env.
type Config struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
	Env  string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Photos    PhotosConfig    `yaml:"photos"`
	Auth      AuthConfig      `yaml:"auth"`
	Search    SearchConfig    `yaml:"search"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app" env:"APP_NAME" env-default:"pet-lost-found"`
}

type DatabaseConfig struct {
	// DSN vacío => repos in-memory (modo dev).
	DSN           string        `yaml:"-" env:"DB_DSN"`
	RunMigrations bool          `yaml:"run_migrations" env:"DB_RUN_MIGRATIONS" env-default:"true"`
	MaxOpenConns  int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns  int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLife   time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

type RedisConfig struct {
	// Addr vacío => sin redis; el guard de broadcast queda en memoria.
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type TwilioConfig struct {
	AccountSID          string        `yaml:"-" env:"TWILIO_ACCOUNT_SID"`
	AuthToken           string        `yaml:"-" env:"TWILIO_AUTH_TOKEN"`
	From                string        `yaml:"from" env:"TWILIO_FROM"`
	BroadcastContentSID string        `yaml:"broadcast_content_sid" env:"TWILIO_BROADCAST_CONTENT_SID"`
	MatchContentSID     string        `yaml:"match_content_sid" env:"TWILIO_MATCH_CONTENT_SID"`
	BaseURL             string        `yaml:"base_url" env:"TWILIO_BASE_URL" env-default:"https://api.twilio.com/2010-04-01"`
	Timeout             time.Duration `yaml:"timeout" env:"TWILIO_TIMEOUT" env-default:"10s"`
	MaxRetries          int           `yaml:"max_retries" env:"TWILIO_MAX_RETRIES" env-default:"2"`
}

// Enabled indica si hay credenciales para hablar con Twilio.
func (c TwilioConfig) Enabled() bool {
	return strings.TrimSpace(c.AccountSID) != "" && strings.TrimSpace(c.AuthToken) != ""
}

type BroadcastConfig struct {
	// Interval es el espacio mínimo entre envíos (rate limit del gateway).
	Interval    time.Duration `yaml:"interval" env:"BROADCAST_INTERVAL" env-default:"500ms"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"BROADCAST_SEND_TIMEOUT" env-default:"10s"`
	Async       bool          `yaml:"async" env:"BROADCAST_ASYNC" env-default:"true"`
	DedupeTTL   time.Duration `yaml:"dedupe_ttl" env:"BROADCAST_DEDUPE_TTL" env-default:"24h"`
}

type PhotosConfig struct {
	PathMarker string `yaml:"path_marker" env:"PHOTO_PATH_MARKER" env-default:"/storage/v1/object/public/"`
}

type AuthConfig struct {
	// JWTSecret vacío => modo dev (header X-Debug-Phone).
	JWTSecret string `yaml:"-" env:"AUTH_JWT_SECRET"`
	Issuer    string `yaml:"issuer" env:"AUTH_JWT_ISSUER"`
}

type SearchConfig struct {
	MinQueryLength int `yaml:"min_query_length" env:"SEARCH_MIN_QUERY_LENGTH" env-default:"10"`
}

// Load lee path si existe; si no, solo env.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			return cfg, cfg.validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Broadcast.Interval < 0 {
		return errors.New("broadcast interval must be >= 0")
	}
	if c.Broadcast.SendTimeout <= 0 {
		return errors.New("broadcast send timeout must be > 0")
	}
	if c.Twilio.Enabled() && strings.TrimSpace(c.Twilio.From) == "" {
		return errors.New("TWILIO_FROM is required when Twilio is configured")
	}
	if c.Search.MinQueryLength < 0 {
		c.Search.MinQueryLength = 0
	}
	return nil
}

// DevMode es true cuando no hay secreto JWT.
func (c *Config) DevMode() bool {
	return strings.TrimSpace(c.Auth.JWTSecret) == ""
}
