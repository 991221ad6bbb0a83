package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/milesrun/hubhop/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Airline AirlineConfig `yaml:"airline" mapstructure:"airline"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Routes  RoutesConfig  `yaml:"routes" mapstructure:"routes"`
	Scraper ScraperConfig `yaml:"scraper" mapstructure:"scraper"`
	Store   store.Config  `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// AirlineConfig identifies the target carrier and its required hub.
type AirlineConfig struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Aliases []string `yaml:"aliases" mapstructure:"aliases"`
	HubCode string   `yaml:"hub_code" mapstructure:"hub_code"`
	HubCity string   `yaml:"hub_city" mapstructure:"hub_city"`
}

// SearchConfig tunes the orchestrator.
type SearchConfig struct {
	Workers        int           `yaml:"workers" mapstructure:"workers"`
	RateLimitDelay time.Duration `yaml:"rate_limit_delay" mapstructure:"rate_limit_delay"`
	MaxRoutes      int           `yaml:"max_routes" mapstructure:"max_routes"`
	DepartureDate  string        `yaml:"departure_date" mapstructure:"departure_date"`
	Passengers     int           `yaml:"passengers" mapstructure:"passengers"`
}

// RoutesConfig tunes the route enumerator.
type RoutesConfig struct {
	Ceiling    int `yaml:"ceiling" mapstructure:"ceiling"`
	MaxSampled int `yaml:"max_sampled" mapstructure:"max_sampled"`
}

// ScraperConfig configures the flight scraper sidecar client.
type ScraperConfig struct {
	BaseURL       string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Currency      string        `yaml:"currency" mapstructure:"currency"`
	RatePerSec    float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	UsePageFilter bool          `yaml:"use_page_filter" mapstructure:"use_page_filter"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HUBHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("airline.name", "Turkish Airlines")
	v.SetDefault("airline.aliases", []string{"Turkish Airlines", "Turkish", "THY", "TK"})
	v.SetDefault("airline.hub_code", "IST")
	v.SetDefault("airline.hub_city", "Istanbul")
	v.SetDefault("search.workers", 8)
	v.SetDefault("search.rate_limit_delay", "1s")
	v.SetDefault("search.max_routes", 20)
	v.SetDefault("search.departure_date", "Fri, Oct 3")
	v.SetDefault("search.passengers", 1)
	v.SetDefault("routes.ceiling", 100000)
	v.SetDefault("routes.max_sampled", 4000)
	v.SetDefault("scraper.base_url", "http://localhost:8233")
	v.SetDefault("scraper.timeout", "120s")
	v.SetDefault("scraper.currency", "INR")
	v.SetDefault("scraper.rate_per_sec", 1.0)
	v.SetDefault("scraper.use_page_filter", true)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.progress_file", "flight_search_progress.json")
	v.SetDefault("store.results_file", "flight_search_results.json")
	v.SetDefault("store.path", "hubhop.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
