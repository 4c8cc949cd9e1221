package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all collector requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

type Config struct {
	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	LogLevel     string `mapstructure:"log_level"`
	DatabasePath string `mapstructure:"database_path"` // merged collection served by the addon
	DataDir      string `mapstructure:"data_dir"`      // per-source dumps written by the collector
	Metrics      struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Addon     AddonConfig     `mapstructure:"addon"`
	Collector CollectorConfig `mapstructure:"collector"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Sentry    struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

// CatalogConfig controls how catalog pages and identifiers are produced.
type CatalogConfig struct {
	PageSize   int  `mapstructure:"page_size"`
	ContentIDs bool `mapstructure:"content_ids"` // emit nova_<hash> ids for movies instead of positional ones
}

// AddonConfig is the identity advertised in the manifest.
type AddonConfig struct {
	ID          string   `mapstructure:"id"`
	Version     string   `mapstructure:"version"`
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Background  string   `mapstructure:"background"`
	Logo        string   `mapstructure:"logo"`
	IDPrefixes  []string `mapstructure:"id_prefixes"`
}

type CollectorConfig struct {
	Schedule              string         `mapstructure:"schedule"`       // cron spec, empty disables scheduled runs
	ClientTimeout         string         `mapstructure:"client_timeout"` // Go duration string like "10s"
	UserAgent             string         `mapstructure:"user_agent"`
	MaxRetries            int            `mapstructure:"max_retries"`
	ProxyConnectionString string         `mapstructure:"proxy_connection_string"`
	Sources               []SourceConfig `mapstructure:"sources"`
}

// SourceConfig describes one listing page to scrape.
type SourceConfig struct {
	Name         string `mapstructure:"name"`
	BaseURL      string `mapstructure:"base_url"`
	ListPath     string `mapstructure:"list_path"`
	ItemSelector string `mapstructure:"item_selector"`
	NextSelector string `mapstructure:"next_selector"` // optional pagination link
	MaxPages     int    `mapstructure:"max_pages"`
	Lang         string `mapstructure:"lang"`
}

type CacheConfig struct {
	Provider string `mapstructure:"provider"` // "memory" or "redis"
	Size     int    `mapstructure:"size"`
	TTL      string `mapstructure:"ttl"`
	Redis    struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	logger = newLogger(os.Stdout)

	config, err := LoadConfig("")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	apply(config)
}

// Use loads the configuration from an explicit file and makes it the active one.
func Use(path string) error {
	config, err := LoadConfig(path)
	if err != nil {
		return err
	}
	apply(config)
	return nil
}

func apply(config *Config) {
	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
	logger.Debug().Str("level", level.String()).Msg("Logging configured")

	globalConfig = config
}

// newLogger writes human-readable lines on a terminal and JSON everywhere else.
func newLogger(out *os.File) zerolog.Logger {
	var w io.Writer = out
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		w = zerolog.ConsoleWriter{Out: out, NoColor: false}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// LoadConfig reads config.yaml from the working directory (or path when given)
// and overlays APP_* environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log_level", "APP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("server.port", "APP_SERVER_PORT", "PORT")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Collector.UserAgent == "" {
		config.Collector.UserAgent = DefaultUserAgent
	}
	if config.Catalog.PageSize <= 0 {
		config.Catalog.PageSize = 100
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 7000)
	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", "db/streamnova_all.json")
	v.SetDefault("data_dir", "db")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("catalog.page_size", 100)
	v.SetDefault("catalog.content_ids", false)

	v.SetDefault("addon.id", "org.streamnova.addon")
	v.SetDefault("addon.version", "1.0.3")
	v.SetDefault("addon.name", "StreamNova")
	v.SetDefault("addon.description", "Multi-source anime streaming addon with auto-scraping")
	v.SetDefault("addon.background", "https://i.imgur.com/t8wVwcg.jpg")
	v.SetDefault("addon.logo", "https://i.imgur.com/44rdZux.png")
	v.SetDefault("addon.id_prefixes", []string{"streamnova_", "movie_", "nova_"})

	v.SetDefault("collector.schedule", "")
	v.SetDefault("collector.client_timeout", "10s")
	v.SetDefault("collector.user_agent", DefaultUserAgent)
	v.SetDefault("collector.max_retries", 3)
	v.SetDefault("collector.proxy_connection_string", "")
	v.SetDefault("collector.sources", []map[string]any{
		{
			"name":          "animeonline",
			"base_url":      "https://ww3.animeonline.ninja",
			"list_path":     "/anime-list/",
			"item_selector": ".animes a",
			"lang":          "en",
		},
		{
			"name":          "latanime",
			"base_url":      "https://latanime.org",
			"list_path":     "/anime/",
			"item_selector": ".AnimeAltList a",
			"lang":          "es",
		},
	})

	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
}

// ParseDuration parses a Go duration string, returning fallback when it is empty or invalid.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("duration", value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.Collector.UserAgent != "" {
		return globalConfig.Collector.UserAgent
	}
	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
