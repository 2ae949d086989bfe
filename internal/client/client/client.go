package client

import (
	"context"

	"github.com/dmitrijs2005/gophfood/internal/client/models"
)

// Client is the transport contract for the auth API.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) (*models.LogoutResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Ping(ctx context.Context) error
	Close() error
}
