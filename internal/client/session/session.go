package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophfood/internal/client/credentials"
	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/client/services"
	"github.com/dmitrijs2005/gophfood/internal/logging"
)

// State is the observable session state.
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Context is the Session Context. It is safe for concurrent use; network
// calls run outside the state lock.
type Context struct {
	auth   services.AuthService
	logger logging.Logger

	mu    sync.Mutex
	state State

	subsMu sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// New returns a Context in the initial {nil, false, true} state.
func New(auth services.AuthService, logger logging.Logger) *Context {
	return &Context{
		auth:   auth,
		logger: logger,
		state:  State{IsLoading: true},
		subs:   make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive the state after every change and
// returns a function that removes it.
func (c *Context) Subscribe(fn func(State)) (unsubscribe func()) {
	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			c.subsMu.Unlock()
		})
	}
}

func (c *Context) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.subsMu.Lock()
	subs := make([]func(State), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.subsMu.Unlock()

	for _, s := range subs {
		s(snapshot.clone())
	}
}

func (c *Context) setLoading(v bool) {
	c.update(func(s *State) { s.IsLoading = v })
}

func signedOut(s *State) {
	s.User = nil
	s.IsAuthenticated = false
}

// Start rebuilds the state from stored credentials. A storage failure is
// logged and leaves the session signed out.
func (c *Context) Start(ctx context.Context) {
	c.setLoading(true)

	user, ok := c.restore(ctx)

	c.update(func(s *State) {
		s.User = user
		s.IsAuthenticated = ok
		s.IsLoading = false
	})
	c.logger.Debug(ctx, "session bootstrap finished", "authenticated", ok)
}

func (c *Context) restore(ctx context.Context) (*models.User, bool) {
	ok, err := c.auth.IsAuthenticated(ctx)
	if err != nil {
		c.logger.Warn(ctx, "auth status check failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	email, err := c.auth.UserEmail(ctx)
	if err != nil {
		if !errors.Is(err, credentials.ErrNoCredentials) {
			c.logger.Warn(ctx, "reading stored email failed", "error", err)
		}
		return nil, true
	}
	return &models.User{Email: email}, true
}

// Login signs in and populates the user from the response. On failure the
// state is left as it was and the error is returned.
func (c *Context) Login(ctx context.Context, email, password string) error {
	c.setLoading(true)

	resp, err := c.auth.Login(ctx, email, password)
	if err != nil {
		c.setLoading(false)
		return err
	}

	c.update(func(s *State) {
		s.User = models.NewUserFromAuth(resp, "")
		s.IsAuthenticated = true
		s.IsLoading = false
	})
	return nil
}

// Register creates the account and signs in. The phone number is taken
// from the request since the server does not return it.
func (c *Context) Register(ctx context.Context, fullName, email, phoneNumber, password string) error {
	c.setLoading(true)

	resp, err := c.auth.Register(ctx, fullName, email, phoneNumber, password)
	if err != nil {
		c.setLoading(false)
		return err
	}

	c.update(func(s *State) {
		s.User = models.NewUserFromAuth(resp, phoneNumber)
		s.IsAuthenticated = true
		s.IsLoading = false
	})
	return nil
}

// Logout always ends signed out. A server-side failure is logged and
// swallowed; a failure to clear local storage is returned.
func (c *Context) Logout(ctx context.Context) error {
	c.setLoading(true)

	_, err := c.auth.Logout(ctx)

	c.update(func(s *State) {
		signedOut(s)
		s.IsLoading = false
	})

	var se *credentials.StoreError
	if errors.As(err, &se) {
		return err
	}
	if err != nil {
		c.logger.Warn(ctx, "logout error", "error", err)
	}
	return nil
}

// RefreshToken renews the token pair. On failure the session is logged
// out before the error is returned.
func (c *Context) RefreshToken(ctx context.Context) error {
	c.setLoading(true)

	if _, err := c.auth.Refresh(ctx); err != nil {
		c.logger.Warn(ctx, "token refresh error", "error", err)
		if lerr := c.Logout(ctx); lerr != nil {
			c.logger.Error(ctx, "logout after failed refresh", "error", lerr)
		}
		return err
	}

	c.setLoading(false)
	return nil
}

// ForceLogout resets the state after the stored credentials were dropped
// elsewhere, e.g. by a failed background refresh. The server is not called.
func (c *Context) ForceLogout(ctx context.Context) {
	c.logger.Info(ctx, "session expired, signed out")
	c.update(func(s *State) {
		signedOut(s)
		s.IsLoading = false
	})
}

// Close drops all subscribers and releases the auth service.
func (c *Context) Close() error {
	c.subsMu.Lock()
	c.subs = make(map[int]func(State))
	c.subsMu.Unlock()
	return c.auth.Close()
}
