package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/common"
	"github.com/dmitrijs2005/gophfood/internal/logging"
)

const (
	authPrefix  = "/auth"
	maxBodySize = 1 << 20
)

// HTTPClient is the Session API Client.
type HTTPClient struct {
	apiURL    string
	bare      *http.Client
	api       *http.Client
	transport *refreshTransport
	logger    logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at apiURL
// (e.g. http://localhost:8084/api). Every call is bounded by timeout.
func NewHTTPClient(apiURL string, timeout time.Duration, store TokenStore, logger logging.Logger) *HTTPClient {
	return newHTTPClient(apiURL, timeout, store, logger, http.DefaultTransport)
}

func newHTTPClient(apiURL string, timeout time.Duration, store TokenStore, logger logging.Logger, base http.RoundTripper) *HTTPClient {
	c := &HTTPClient{
		apiURL: strings.TrimRight(apiURL, "/"),
		logger: logger,
	}
	c.bare = &http.Client{Timeout: timeout, Transport: base}
	c.transport = &refreshTransport{
		base:    base,
		store:   store,
		refresh: c.RefreshToken,
		logger:  logger,
	}
	c.api = &http.Client{Timeout: timeout, Transport: c.transport}
	return c
}

// OnSessionExpired registers fn to run after a failed refresh cleared the
// stored credentials. It replaces any previous handler.
func (c *HTTPClient) OnSessionExpired(fn func(ctx context.Context)) {
	c.transport.setOnExpired(fn)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.send(ctx, c.bare, http.MethodPost, authPrefix+"/login", req, &out); err != nil {
		return nil, err
	}
	if !out.Tokens().Valid() {
		return nil, fmt.Errorf("login: %w: missing tokens", ErrMalformedResponse)
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.send(ctx, c.bare, http.MethodPost, authPrefix+"/register", req, &out); err != nil {
		return nil, err
	}
	if !out.Tokens().Valid() {
		return nil, fmt.Errorf("register: %w: missing tokens", ErrMalformedResponse)
	}
	return &out, nil
}

// Logout goes through the refreshing transport: the server reads the
// bearer token as well as the refresh token in the body. A replay after a
// refresh sends the rotated refresh token from the store.
func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) (*models.LogoutResponse, error) {
	path := authPrefix + "/logout"
	req, err := c.newRequest(ctx, http.MethodPost, path, models.LogoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	req.GetBody = func() (io.ReadCloser, error) {
		rt := refreshToken
		if cur, err := c.transport.store.RefreshToken(ctx); err == nil && cur != "" {
			rt = cur
		}
		b, err := json.Marshal(models.LogoutRequest{RefreshToken: rt})
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(b)), nil
	}

	var out models.LogoutResponse
	if err := c.do(ctx, c.api, req, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges refreshToken for a new pair. It bypasses the
// refreshing transport so a rejected refresh never triggers another one.
func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var out models.TokenPair
	body := models.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.send(ctx, c.bare, http.MethodPost, authPrefix+"/refresh-token", body, &out); err != nil {
		return nil, err
	}
	if !out.Valid() {
		return nil, fmt.Errorf("refresh: %w: incomplete token pair", ErrMalformedResponse)
	}
	return &out, nil
}

// Ping probes the connectivity endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.send(ctx, c.bare, http.MethodGet, authPrefix+"/test", nil, nil)
}

// Do sends an authenticated JSON request to path under the API root and
// decodes a 2xx body into out. in and out may be nil.
func (c *HTTPClient) Do(ctx context.Context, method, path string, in, out any) error {
	return c.send(ctx, c.api, method, path, in, out)
}

func (c *HTTPClient) Close() error {
	c.bare.CloseIdleConnections()
	c.api.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) send(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	return c.do(ctx, hc, req, path, out)
}

// newRequest builds a JSON request for path under the API root.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	return req, nil
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, req *http.Request, path string, out any) error {
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	log := c.logger.With("request_id", requestID, "method", req.Method, "path", path)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Debug(ctx, "reading response failed", "error", err)
		return networkError(err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w: %w", path, ErrMalformedResponse, err)
	}
	return nil
}
