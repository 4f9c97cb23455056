package api

import (
	"context"
	"net/http"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// Auth returns the authentication facade.
func (c *Client) Auth() *AuthAPI {
	return &AuthAPI{c: c}
}

// AuthAPI wraps the auth endpoints. It returns the token/user pair but never
// persists it; the caller owns the session store.
type AuthAPI struct {
	c *Client
}

// Register creates an account and returns the issued token with the new user.
func (a *AuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	resp, err := a.c.Do(ctx, "/api/v1/auth/register", Options{
		Method: http.MethodPost,
		Body:   reg,
	})
	if err != nil {
		return nil, err
	}
	var result domain.AuthResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login exchanges credentials for a token and the user record.
func (a *AuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	resp, err := a.c.Do(ctx, "/api/v1/auth/authenticate", Options{
		Method: http.MethodPost,
		Body:   creds,
	})
	if err != nil {
		return nil, err
	}
	var result domain.AuthResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
