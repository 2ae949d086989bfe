package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophfood/internal/client/config"
	"github.com/dmitrijs2005/gophfood/internal/client/credentials"
	"github.com/dmitrijs2005/gophfood/internal/client/forms"
	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/client/session"
	"github.com/dmitrijs2005/gophfood/internal/logging"
	"github.com/dmitrijs2005/gophfood/internal/netx"
)

// ---- fake auth service ----

type fakeAuth struct {
	// Login
	loginEmail string
	loginPass  string
	loginResp  *models.AuthResponse
	loginErr   error
	loginCalls int

	// Register
	regFullName string
	regEmail    string
	regPhone    string
	regPass     string
	regResp     *models.AuthResponse
	regErr      error
	regCalls    int

	// Logout / Refresh
	logoutCalls int
	logoutErr   error
	refreshErr  error

	// Status
	authenticated bool
	email         string
	emailErr      error
	tokenInfo     *credentials.TokenInfo
	tokenErr      error

	pingErr error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.loginCalls++
	f.loginEmail, f.loginPass = email, password
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, fullName, email, phone, password string) (*models.AuthResponse, error) {
	f.regCalls++
	f.regFullName, f.regEmail, f.regPhone, f.regPass = fullName, email, phone, password
	return f.regResp, f.regErr
}

func (f *fakeAuth) Logout(context.Context) (*models.LogoutResponse, error) {
	f.logoutCalls++
	if f.logoutErr != nil {
		return nil, f.logoutErr
	}
	return &models.LogoutResponse{Message: "Logged out successfully"}, nil
}

func (f *fakeAuth) Refresh(context.Context) (*models.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, nil
}

func (f *fakeAuth) IsAuthenticated(context.Context) (bool, error) { return f.authenticated, nil }
func (f *fakeAuth) UserEmail(context.Context) (string, error)     { return f.email, f.emailErr }

func (f *fakeAuth) TokenInfo(context.Context) (*credentials.TokenInfo, error) {
	if f.tokenInfo == nil && f.tokenErr == nil {
		return nil, credentials.ErrNoCredentials
	}
	return f.tokenInfo, f.tokenErr
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }
func (f *fakeAuth) Close() error               { return nil }

// ---- app builder ----

func newTestApp(t *testing.T, fa *fakeAuth, policy forms.Policy, logger logging.Logger) (*App, *bytes.Buffer) {
	t.Helper()
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ProbeTimeout = time.Second

	sess := session.New(fa, logger)
	out := &bytes.Buffer{}

	return &App{
		config:      cfg,
		logger:      logger,
		authService: fa,
		session:     sess,
		forms:       forms.NewAdapter(sess, policy),
		netInfo:     netx.Describe(netx.ModeDev, "http://localhost:8084/api"),
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         out,
	}, out
}

// stubInputs replaces the prompt seams with queued answers.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

var janeResp = &models.AuthResponse{
	AccessToken: "A1", RefreshToken: "R1",
	Email: "user@example.com", FirstName: "Jane", LastName: "Doe",
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
