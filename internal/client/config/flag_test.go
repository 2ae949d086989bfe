package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophfood/internal/netx"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	withAll := defaults()
	withAll.APIBaseURL = "http://10.0.0.5:8084/api"
	withAll.OnlineCheckInterval = 10 * time.Second
	withAll.Mode = netx.ModeProd
	withAll.StoreBackend = kv.BackendMemory
	withAll.Surface = "admin"

	withDebug := defaults()
	withDebug.LogLevel = "debug"

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://10.0.0.5:8084/api", "-i", "10", "-m", "prod", "-s", "memory", "-surface", "admin"},
			expected: withAll},
		{name: "unknown flags are ignored", args: []string{"cmd", "-x", "1", "-log-level", "debug"}, expected: withDebug},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect mode", args: []string{"cmd", "-m", "staging"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := defaults()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
