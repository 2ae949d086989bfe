package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/common"
	"github.com/dmitrijs2005/gophfood/internal/logging"
)

// TokenStore is the part of the credential store the transport needs.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, pair models.TokenPair) error
	Clear(ctx context.Context) error
}

type refreshFunc func(ctx context.Context, refreshToken string) (*models.TokenPair, error)

type retriedKey struct{}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func wasRetried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

// refreshTransport attaches the stored access token to every request.
// On a 401 it refreshes the token pair and replays the request once.
// If the refresh fails the store is cleared, onExpired runs and the
// original 401 response is returned.
type refreshTransport struct {
	base    http.RoundTripper
	store   TokenStore
	refresh refreshFunc
	logger  logging.Logger
	group   singleflight.Group

	mu        sync.RWMutex
	onExpired func(ctx context.Context)
}

func (t *refreshTransport) setOnExpired(fn func(ctx context.Context)) {
	t.mu.Lock()
	t.onExpired = fn
	t.mu.Unlock()
}

func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.store.AccessToken(ctx)
	if err != nil {
		// Unauthenticated calls still go out; the server decides.
		token = ""
	}

	first := req.Clone(ctx)
	setBearer(first, token)

	resp, err := t.base.RoundTrip(first)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || wasRetried(ctx) {
		return resp, err
	}

	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		t.logger.Warn(ctx, "cannot replay request body, skipping refresh", "url", req.URL.String())
		return resp, nil
	}

	pair, err := t.refreshShared(ctx, token)
	if err != nil {
		t.expire(ctx, err)
		return resp, nil
	}
	drain(resp.Body)

	retry := req.Clone(markRetried(ctx))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		// The rebuilt body may differ in size from the first attempt.
		raw, err := io.ReadAll(body)
		_ = body.Close()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		retry.Body = io.NopCloser(bytes.NewReader(raw))
		retry.ContentLength = int64(len(raw))
	}
	setBearer(retry, pair.AccessToken)

	t.logger.Debug(ctx, "replaying request with refreshed token", "url", req.URL.String())
	return t.base.RoundTrip(retry)
}

// refreshShared returns a fresh token pair, running at most one refresh
// call at a time. A request that failed with an access token that is no
// longer current reuses the stored pair instead of refreshing again.
func (t *refreshTransport) refreshShared(ctx context.Context, usedToken string) (models.TokenPair, error) {
	// The flight outlives any single caller's cancellation.
	flightCtx := context.WithoutCancel(ctx)

	v, err, shared := t.group.Do("refresh", func() (any, error) {
		if current, err := t.store.AccessToken(flightCtx); err == nil && current != usedToken {
			if rt, err := t.store.RefreshToken(flightCtx); err == nil {
				return models.TokenPair{AccessToken: current, RefreshToken: rt}, nil
			}
		}

		rt, err := t.store.RefreshToken(flightCtx)
		if err != nil {
			return nil, fmt.Errorf("read refresh token: %w", err)
		}

		pair, err := t.refresh(flightCtx, rt)
		if err != nil {
			return nil, fmt.Errorf("refresh token: %w", err)
		}

		if err := t.store.SaveTokens(flightCtx, *pair); err != nil {
			return nil, err
		}
		return *pair, nil
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	if shared {
		t.logger.Debug(ctx, "joined in-flight token refresh")
	}
	return v.(models.TokenPair), nil
}

func (t *refreshTransport) expire(ctx context.Context, cause error) {
	t.logger.Warn(ctx, "token refresh failed, clearing session", "error", cause)

	if err := t.store.Clear(ctx); err != nil {
		t.logger.Error(ctx, "failed to clear credentials", "error", err)
	}

	t.mu.RLock()
	fn := t.onExpired
	t.mu.RUnlock()

	if fn != nil {
		fn(ctx)
	}
}

func setBearer(req *http.Request, token string) {
	if token == "" {
		req.Header.Del(common.AuthorizationHeaderName)
		return
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerToken(token))
}

func drain(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodySize))
	_ = body.Close()
}
