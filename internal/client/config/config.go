package config

import (
	"time"

	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophfood/internal/netx"
)

// Config holds runtime settings for the gophfood client.
//
// Fields:
//   - Mode: dev targets a backend on DevHost:DevPort, prod targets ProdBaseURL.
//   - APIBaseURL: explicit API root; when set, Mode/DevHost/ProdBaseURL are ignored.
//   - RequestTimeout: bound on every API request, refresh included.
//   - OnlineCheckInterval / ProbeTimeout: connectivity watcher settings.
//   - Store*/Redis*: where credentials are kept.
//   - Surface: which form validation rules apply (mobile or admin).
type Config struct {
	Mode        netx.Mode
	DevHost     string
	DevPort     string
	ProdBaseURL string
	APIBaseURL  string

	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	ProbeTimeout        time.Duration

	StoreBackend   kv.Backend
	StorePath      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	Surface   string
	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Mode = netx.ModeDev
	c.DevHost = "localhost"
	c.DevPort = "8084"
	c.ProdBaseURL = "https://your-production-api.com"
	c.APIBaseURL = ""

	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeTimeout = 5 * time.Second

	c.StoreBackend = kv.BackendSQLite
	c.StorePath = "data/credentials.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisKeyPrefix = "gophfood:"

	c.Surface = "mobile"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// ResolveAPIBaseURL returns APIBaseURL when set, otherwise the URL derived
// from Mode.
func (c *Config) ResolveAPIBaseURL() (string, error) {
	if c.APIBaseURL != "" {
		return c.APIBaseURL, nil
	}
	return netx.APIBaseURL(c.Mode, c.DevHost, c.DevPort, c.ProdBaseURL)
}

// StoreOptions maps the store settings onto kv.Options.
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend:       c.StoreBackend,
		SQLitePath:    c.StorePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisKeyPrefix,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
