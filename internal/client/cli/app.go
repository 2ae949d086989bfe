package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophfood/internal/client/client"
	"github.com/dmitrijs2005/gophfood/internal/client/config"
	"github.com/dmitrijs2005/gophfood/internal/client/credentials"
	"github.com/dmitrijs2005/gophfood/internal/client/forms"
	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophfood/internal/client/services"
	"github.com/dmitrijs2005/gophfood/internal/client/session"
	"github.com/dmitrijs2005/gophfood/internal/logging"
	"github.com/dmitrijs2005/gophfood/internal/netx"
)

// Mode is the connectivity status shown in the prompt.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService services.AuthService
	store       *credentials.Store
	session     *session.Context
	forms       *forms.Adapter
	netInfo     netx.Info
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	Mode Mode
}

// NewApp wires the credential store, API client, auth service, session and
// form adapter described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	policy, err := forms.PolicyFor(forms.Surface(c.Surface))
	if err != nil {
		return nil, err
	}

	baseURL, err := c.ResolveAPIBaseURL()
	if err != nil {
		return nil, fmt.Errorf("resolve api url: %w", err)
	}

	repo, err := kv.Open(ctx, c.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	store := credentials.NewStore(repo)

	apiClient := client.NewHTTPClient(baseURL, c.RequestTimeout, store, logger)
	as := services.NewAuthService(apiClient, store, logger)
	sess := session.New(as, logger)
	apiClient.OnSessionExpired(sess.ForceLogout)

	sess.Subscribe(func(s session.State) {
		logger.Debug(context.Background(), "session state changed",
			"authenticated", s.IsAuthenticated, "loading", s.IsLoading)
	})

	return &App{
		config:      c,
		logger:      logger,
		authService: as,
		store:       store,
		session:     sess,
		forms:       forms.NewAdapter(sess, policy),
		netInfo:     netx.Describe(c.Mode, baseURL),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run bootstraps the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.session.Close(); err != nil {
			a.logger.Error(ctx, "closing session", "error", err)
		}
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "closing credential store", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

// StartOnlineStatusWatcher pings the server every interval and switches
// between online and offline mode. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.ProbeTimeout)
	defer cancel()

	err := a.authService.Ping(ctx)
	if err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	return nil
}
