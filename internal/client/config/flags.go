package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophfood/internal/flagx"
	"github.com/dmitrijs2005/gophfood/internal/netx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string        API base URL, overrides the mode-derived one
//	-i int           online check interval (in seconds)
//	-m string        mode: dev or prod
//	-s string        credential store backend: sqlite, redis or memory
//	-surface string  form rules: mobile or admin
//	-log-level string
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-m", "-s", "-surface", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL, e.g. http://localhost:8084/api")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	mode := fs.String("m", string(cfg.Mode), "mode: dev or prod")
	backend := fs.String("s", string(cfg.StoreBackend), "credential store: sqlite, redis or memory")
	fs.StringVar(&cfg.Surface, "surface", cfg.Surface, "form rules: mobile or admin")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	m, err := netx.ParseMode(*mode)
	if err != nil {
		panic(err)
	}
	cfg.Mode = m
	cfg.StoreBackend = kv.Backend(*backend)
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
