package client

import (
	"context"
	"net/http"

	"github.com/travelia/travelia-backend/internal/model"
)

// Login authenticates with email and password. On success the returned
// token is installed on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	payload := model.LoginRequest{Email: email, Password: password}

	var result model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Verify confirms the installed token is still valid server-side and
// returns the authenticated admin profile.
func (c *Client) Verify(ctx context.Context) (*model.Admin, error) {
	var result struct {
		Admin model.Admin `json:"admin"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/verify", nil, &result); err != nil {
		return nil, err
	}
	return &result.Admin, nil
}

// Logout revokes the server-side session and clears the installed token.
// The token is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}
