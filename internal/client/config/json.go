package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophfood/internal/flagx"
	"github.com/dmitrijs2005/gophfood/internal/netx"
	"github.com/dmitrijs2005/gophfood/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Pointer and zero values mean
// "not set" and leave the current Config value alone.
type JsonConfig struct {
	Mode        string `json:"mode"`
	DevHost     string `json:"dev_host"`
	DevPort     string `json:"dev_port"`
	ProdBaseURL string `json:"prod_base_url"`
	APIBaseURL  string `json:"api_base_url"`

	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	ProbeTimeout        timex.Duration `json:"probe_timeout"`

	StoreBackend   string `json:"store_backend"`
	StorePath      string `json:"store_path"`
	RedisAddr      string `json:"redis_addr"`
	RedisPassword  string `json:"redis_password"`
	RedisDB        *int   `json:"redis_db"`
	RedisKeyPrefix string `json:"redis_key_prefix"`

	Surface   string `json:"surface"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag (flagx.JsonConfigFlags).
// Without one, nothing is loaded. Read, unmarshal and mode errors panic.
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Mode != "" {
		m, err := netx.ParseMode(jc.Mode)
		if err != nil {
			panic(err)
		}
		cfg.Mode = m
	}
	setString(&cfg.DevHost, jc.DevHost)
	setString(&cfg.DevPort, jc.DevPort)
	setString(&cfg.ProdBaseURL, jc.ProdBaseURL)
	setString(&cfg.APIBaseURL, jc.APIBaseURL)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.ProbeTimeout.Duration > 0 {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}

	if jc.StoreBackend != "" {
		cfg.StoreBackend = kv.Backend(jc.StoreBackend)
	}
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	setString(&cfg.RedisKeyPrefix, jc.RedisKeyPrefix)

	setString(&cfg.Surface, jc.Surface)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
