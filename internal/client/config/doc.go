// Package config loads runtime configuration for the gophfood client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv): APP_ENV, IP_ADDRESS, API_BASE_URL,
//     STORE_BACKEND, STORE_PATH, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB,
//     SURFACE, LOG_LEVEL.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string        API base URL
//	-i int           online status check interval (seconds)
//	-m string        dev or prod
//	-s string        sqlite, redis or memory
//	-surface string  mobile or admin
//	-log-level string
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "mode": "dev",
//	  "dev_host": "192.168.1.20",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "store_backend": "sqlite",
//	  "store_path": "data/credentials.db"
//	}
//
// Primary API
//
//   - type Config                 holds all settings
//   - func LoadConfig() *Config   applies defaults, JSON, environment, then flags
//   - func (*Config) ResolveAPIBaseURL() picks the API root for the mode
package config
