package myhours

import (
	"context"
	"net/http"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// TokenResponse is the body of a successful login or refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expiresIn"`
}

type loginRequest struct {
	GrantType string `json:"grantType"`
	ClientID  string `json:"clientId"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type refreshRequest struct {
	GrantType    string `json:"grantType"`
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges an email and password for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var tok TokenResponse
	err := c.do(ctx, c.plain, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/tokens/login",
		body: loginRequest{
			GrantType: "password",
			ClientID:  "api",
			Email:     email,
			Password:  password,
		},
		want: http.StatusOK,
		kind: model.ErrAuth,
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tok TokenResponse
	err := c.do(ctx, c.plain, request{
		op:     "refresh",
		method: http.MethodPost,
		path:   "/tokens/refresh",
		body: refreshRequest{
			GrantType:    "refresh_token",
			RefreshToken: refreshToken,
		},
		want: http.StatusOK,
		kind: model.ErrAuth,
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}
