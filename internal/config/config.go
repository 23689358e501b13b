package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourceDir      = "dir"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	Env             string        `yaml:"app_env" env:"APP_ENV" env-default:"development"`
	ListenAddr      string        `yaml:"listen_addr" env:"LISTEN_ADDR" env-default:":8080"`
	RefreshSchedule string        `yaml:"refresh_schedule" env:"REFRESH_SCHEDULE"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:","`
	Source          SourceConfig  `yaml:"source"`
	Demo            DemoConfig    `yaml:"demo"`
	Breaker         BreakerConfig `yaml:"breaker"`
}

type SourceConfig struct {
	Kind        string `yaml:"kind" env:"SOURCE_KIND" env-default:"dir" validate:"oneof=dir http postgres sqlite"`
	Dir         string `yaml:"dir" env:"SOURCE_DIR" env-default:"data"`
	URL         string `yaml:"url" env:"SOURCE_URL" validate:"required_if=Kind http"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" validate:"required_if=Kind postgres"`
	SQLitePath  string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"data/esgwatch.db"`

	// FetchTimeout of zero leaves fetches unbounded.
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"FETCH_TIMEOUT" env-default:"0s"`
	Watch        bool          `yaml:"watch" env:"WATCH_SOURCE_DIR" env-default:"false"`
}

// DemoConfig makes a healthy source misbehave for demos.
type DemoConfig struct {
	Delay     time.Duration `yaml:"delay" env:"DEMO_DELAY" env-default:"0s"`
	ErrorRate float64       `yaml:"error_rate" env:"DEMO_ERROR_RATE" env-default:"0" validate:"gte=0,lte=1"`
}

func (d DemoConfig) Enabled() bool { return d.Delay > 0 || d.ErrorRate > 0 }

type BreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests" env:"BREAKER_MAX_REQUESTS" env-default:"1"`
	Interval         time.Duration `yaml:"interval" env:"BREAKER_INTERVAL" env-default:"1m"`
	Timeout          time.Duration `yaml:"timeout" env:"BREAKER_TIMEOUT" env-default:"30s"`
	FailureThreshold float64       `yaml:"failure_threshold" env:"BREAKER_FAILURE_THRESHOLD" env-default:"0.6" validate:"gt=0,lte=1"`
	MinRequests      uint32        `yaml:"min_requests" env:"BREAKER_MIN_REQUESTS" env-default:"3"`
}

func (c Config) IsDevelopment() bool { return strings.EqualFold(c.Env, "development") }

// Load reads CONFIG_FILE when it is set, otherwise the environment alone.
// Environment variables override the file either way.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
