package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AppName    = "FeedsNG"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/Guruth/FeedsNG"
)

// UserAgent identifies the feed fetcher to remote hosts.
var UserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + "; +" + AppRepo + ")"

// Chrome headers for the fingerprinted fallback session (must match azuretls Chrome profile version)
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Addr      string `env:"FEEDSNG_ADDR"       envDefault:":8080"`
	DataDir   string `env:"FEEDSNG_DATA_DIR"   envDefault:"./data"`
	LogLevel  string `env:"FEEDSNG_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"FEEDSNG_LOG_FORMAT" envDefault:"text"`
	NodeID    int64  `env:"FEEDSNG_NODE_ID"    envDefault:"1"`

	DBDriver    string `env:"FEEDSNG_DB_DRIVER"    envDefault:"sqlite"`
	DBPath      string `env:"FEEDSNG_DB_PATH"`
	DatabaseURL string `env:"FEEDSNG_DATABASE_URL"`

	InitialDelay     time.Duration `env:"FEEDSNG_UPDATE_INITIAL_DELAY" envDefault:"10s"`
	UpdateInterval   time.Duration `env:"FEEDSNG_UPDATE_INTERVAL"      envDefault:"15m"`
	FetchTimeout     time.Duration `env:"FEEDSNG_FETCH_TIMEOUT"        envDefault:"30s"`
	SweepConcurrency int           `env:"FEEDSNG_SWEEP_CONCURRENCY"    envDefault:"1"`
	ProxyURL         string        `env:"FEEDSNG_PROXY_URL"`
	HostRateLimit    float64       `env:"FEEDSNG_HOST_RATE_LIMIT"      envDefault:"2"`

	CacheBackend string        `env:"FEEDSNG_CACHE_BACKEND" envDefault:"memory"`
	CacheTTL     time.Duration `env:"FEEDSNG_CACHE_TTL"     envDefault:"5m"`
	RedisAddr    string        `env:"FEEDSNG_REDIS_ADDR"    envDefault:"localhost:6379"`
	RedisDB      int           `env:"FEEDSNG_REDIS_DB"      envDefault:"0"`
}

// Load reads the configuration from the environment and fills derived values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.DataDir = filepath.Clean(c.DataDir)
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "feedsng.db")
	}
	c.DBPath = filepath.Clean(c.DBPath)

	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("FEEDSNG_DATABASE_URL is required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}

	switch c.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unsupported cache backend %q", c.CacheBackend)
	}

	if c.InitialDelay < 0 || c.UpdateInterval <= 0 {
		return fmt.Errorf("invalid scheduler timing: initial delay %s, interval %s", c.InitialDelay, c.UpdateInterval)
	}
	if c.SweepConcurrency < 1 {
		c.SweepConcurrency = 1
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}
