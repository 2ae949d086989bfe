// Package credentials stores the session's token pair and user-email marker
// on top of a kv.Repository.
//
// Missing values and storage failures are reported differently:
// ErrNoCredentials means "nobody is signed in", *StoreError means the
// backend could not be read or written.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/client/repositories/kv"
)

// Storage keys. They are part of the on-device format and must not change.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserEmail    = "userEmail"
)

// AllKeys lists every key cleared on logout.
var AllKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserEmail}

var ErrNoCredentials = errors.New("no stored credentials")

// StoreError wraps a backend failure with the operation and key involved.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	msg := e.Op + " credentials"
	if e.Key != "" {
		msg += " " + e.Key
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store is the Credential Store. It is safe for concurrent use when the
// underlying repository is.
type Store struct {
	repo kv.Repository
}

func NewStore(repo kv.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) || (err == nil && v == "") {
		return "", ErrNoCredentials
	}
	if err != nil {
		return "", &StoreError{Op: "read", Key: key, Err: err}
	}
	return v, nil
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyRefreshToken)
}

func (s *Store) UserEmail(ctx context.Context) (string, error) {
	return s.get(ctx, KeyUserEmail)
}

// Tokens returns the stored pair. A half-present pair is reported as
// ErrNoCredentials.
func (s *Store) Tokens(ctx context.Context) (models.TokenPair, error) {
	access, err := s.AccessToken(ctx)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.RefreshToken(ctx)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// SaveSession stores a fresh pair and the email it belongs to in one write.
func (s *Store) SaveSession(ctx context.Context, pair models.TokenPair, email string) error {
	if !pair.Valid() {
		return &StoreError{Op: "write", Err: errors.New("incomplete token pair")}
	}
	err := s.repo.SetMany(ctx, map[string]string{
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
		KeyUserEmail:    email,
	})
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return nil
}

// SaveTokens replaces the pair after a refresh, leaving the email marker.
func (s *Store) SaveTokens(ctx context.Context, pair models.TokenPair) error {
	if !pair.Valid() {
		return &StoreError{Op: "write", Err: errors.New("incomplete token pair")}
	}
	err := s.repo.SetMany(ctx, map[string]string{
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
	})
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return nil
}

// Clear removes the pair and the email marker.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.RemoveAll(ctx, AllKeys...); err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	return nil
}

// Close releases the underlying repository.
func (s *Store) Close() error {
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("close credential store: %w", err)
	}
	return nil
}
