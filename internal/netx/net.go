// Package netx derives API endpoints from the runtime mode and describes
// the resulting network setup for diagnostics.
package netx

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

type Mode string

const (
	// ModeDev targets a backend running on a development machine, reachable
	// from a device on the same network.
	ModeDev Mode = "dev"
	// ModeProd targets the fixed production URL.
	ModeProd Mode = "prod"
)

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDev, ModeProd:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want dev or prod)", s)
	}
}

// APIBaseURL returns the REST API root for mode:
//
//	dev:  http://<devHost>:<devPort>/api
//	prod: <prodURL>/api
func APIBaseURL(mode Mode, devHost, devPort, prodURL string) (string, error) {
	switch mode {
	case ModeDev:
		if devHost == "" {
			return "", fmt.Errorf("dev mode needs a host (set IP_ADDRESS)")
		}
		return "http://" + net.JoinHostPort(devHost, devPort) + "/api", nil
	case ModeProd:
		if prodURL == "" {
			return "", fmt.Errorf("prod mode needs a base url")
		}
		return JoinURL(prodURL, "api")
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// JoinURL appends path segments to base, keeping exactly one slash between
// them. base must be an absolute http(s) URL.
func JoinURL(base string, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid url %q: scheme must be http or https", base)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", base)
	}
	return u.JoinPath(segments...).String(), nil
}

// Info summarises where the client will send requests.
type Info struct {
	Mode          Mode
	BaseURL       string
	Host          string
	IsDevelopment bool
}

// Describe builds an Info for baseURL.
func Describe(mode Mode, baseURL string) Info {
	info := Info{Mode: mode, BaseURL: baseURL, IsDevelopment: mode == ModeDev}
	if u, err := url.Parse(baseURL); err == nil {
		info.Host = u.Host
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("mode=%s base_url=%s host=%s development=%t", i.Mode, i.BaseURL, i.Host, i.IsDevelopment)
}
