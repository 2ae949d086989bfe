// Package services contains application services for the gophfood client.
// This file defines the authentication service: login, register, logout,
// token refresh and the persistence of the resulting credentials.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfood/internal/client/client"
	"github.com/dmitrijs2005/gophfood/internal/client/credentials"
	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/logging"
)

// DefaultLogoutMessage is returned when there was nothing to revoke on the server.
const DefaultLogoutMessage = "Logged out successfully"

var ErrNoRefreshToken = errors.New("no refresh token available")

// CredentialStore is the subset of credentials.Store used by the service.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	UserEmail(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, pair models.TokenPair, email string) error
	SaveTokens(ctx context.Context, pair models.TokenPair) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the UI layer.
//
// Contract:
//   - Login/Register: on success the token pair and email are stored before
//     the call returns; on failure nothing is stored.
//   - Logout: always clears stored credentials, even when the server call fails.
//   - Refresh: exchanges the stored refresh token; a failed exchange clears
//     stored credentials.
//   - IsAuthenticated: presence of an access token, no validation.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, fullName, email, phoneNumber, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) (*models.LogoutResponse, error)
	Refresh(ctx context.Context) (*models.TokenPair, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	UserEmail(ctx context.Context) (string, error)
	TokenInfo(ctx context.Context) (*credentials.TokenInfo, error)
	Ping(ctx context.Context) error
	Close() error
}

// authService is the concrete AuthService backed by a remote Client
// and a credential store.
type authService struct {
	client client.Client
	store  CredentialStore
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and store.
func NewAuthService(c client.Client, store CredentialStore, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, logger: logger}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.persist(ctx, resp, email); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "login succeeded", "email", resp.Email)
	return resp, nil
}

func (a *authService) Register(ctx context.Context, fullName, email, phoneNumber, password string) (*models.AuthResponse, error) {
	req := models.RegisterRequest{
		Email:       email,
		Password:    password,
		FullName:    fullName,
		PhoneNumber: phoneNumber,
	}
	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}

	if err := a.persist(ctx, resp, email); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "registration succeeded", "email", resp.Email)
	return resp, nil
}

// persist stores the session from resp. When the server omits the email the
// submitted one is used. A failed write is rolled back so a half-written
// session never survives.
func (a *authService) persist(ctx context.Context, resp *models.AuthResponse, email string) error {
	if resp.Email == "" {
		resp.Email = email
	}
	err := a.store.SaveSession(ctx, resp.Tokens(), resp.Email)
	if err == nil {
		return nil
	}

	if cerr := a.store.Clear(ctx); cerr != nil {
		a.logger.Error(ctx, "rollback of stored credentials failed", "error", cerr)
	}
	return fmt.Errorf("save session: %w", err)
}

func (a *authService) Logout(ctx context.Context) (*models.LogoutResponse, error) {
	rt, err := a.store.RefreshToken(ctx)
	if err != nil && !errors.Is(err, credentials.ErrNoCredentials) {
		// Unreadable store: still try to clear it.
		a.logger.Warn(ctx, "reading refresh token for logout failed", "error", err)
	}

	resp := &models.LogoutResponse{Message: DefaultLogoutMessage}
	var callErr error
	if rt != "" {
		r, err := a.client.Logout(ctx, rt)
		if err != nil {
			callErr = fmt.Errorf("logout error: %w", err)
		} else {
			resp = r
			if resp.Message == "" {
				resp.Message = DefaultLogoutMessage
			}
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		return nil, errors.Join(callErr, fmt.Errorf("clear session: %w", err))
	}
	if callErr != nil {
		return nil, callErr
	}
	return resp, nil
}

func (a *authService) Refresh(ctx context.Context) (*models.TokenPair, error) {
	rt, err := a.store.RefreshToken(ctx)
	if errors.Is(err, credentials.ErrNoCredentials) {
		return nil, ErrNoRefreshToken
	}
	if err != nil {
		return nil, err
	}

	pair, err := a.client.RefreshToken(ctx, rt)
	if err != nil {
		if cerr := a.store.Clear(ctx); cerr != nil {
			a.logger.Error(ctx, "clearing credentials after failed refresh", "error", cerr)
		}
		return nil, fmt.Errorf("refresh error: %w", err)
	}

	if err := a.store.SaveTokens(ctx, *pair); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}
	return pair, nil
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := a.store.AccessToken(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, credentials.ErrNoCredentials):
		return false, nil
	default:
		return false, err
	}
}

func (a *authService) UserEmail(ctx context.Context) (string, error) {
	return a.store.UserEmail(ctx)
}

// TokenInfo decodes the stored access token's claims for display.
func (a *authService) TokenInfo(ctx context.Context) (*credentials.TokenInfo, error) {
	token, err := a.store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return credentials.ParseTokenInfo(token)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close() error {
	return a.client.Close()
}
