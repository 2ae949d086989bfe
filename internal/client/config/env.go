package config

import (
	"os"
	"strconv"

	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophfood/internal/netx"
)

// Environment variables read by parseEnv.
const (
	EnvMode          = "APP_ENV"
	EnvDevHost       = "IP_ADDRESS"
	EnvAPIBaseURL    = "API_BASE_URL"
	EnvStoreBackend  = "STORE_BACKEND"
	EnvStorePath     = "STORE_PATH"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvSurface       = "SURFACE"
	EnvLogLevel      = "LOG_LEVEL"
)

// parseEnv overlays Config with non-empty environment variables. APP_ENV
// accepts "production" as an alias for prod. Invalid values panic.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvMode); v != "" {
		if v == "production" {
			v = string(netx.ModeProd)
		}
		if v == "development" {
			v = string(netx.ModeDev)
		}
		m, err := netx.ParseMode(v)
		if err != nil {
			panic(err)
		}
		cfg.Mode = m
	}

	setString(&cfg.DevHost, os.Getenv(EnvDevHost))
	setString(&cfg.APIBaseURL, os.Getenv(EnvAPIBaseURL))

	if v := os.Getenv(EnvStoreBackend); v != "" {
		cfg.StoreBackend = kv.Backend(v)
	}
	setString(&cfg.StorePath, os.Getenv(EnvStorePath))
	setString(&cfg.RedisAddr, os.Getenv(EnvRedisAddr))
	setString(&cfg.RedisPassword, os.Getenv(EnvRedisPassword))
	if v := os.Getenv(EnvRedisDB); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = db
	}

	setString(&cfg.Surface, os.Getenv(EnvSurface))
	setString(&cfg.LogLevel, os.Getenv(EnvLogLevel))
}
