// Package client is a Go consumer of the jobboard API. It wraps the
// HTTP endpoints and keeps the authenticated-user state observable by
// the embedding application.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a structured 4xx response from the server.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// User mirrors the server's user payloads. Token fields are empty on
// projections that carry no tokens.
type User struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Bio          string `json:"bio"`
	Image        string `json:"image"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// IsEmpty reports whether the user is the unauthenticated sentinel.
func (u User) IsEmpty() bool {
	return u == User{}
}

// Credentials is the login/registration request body.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Image    string `json:"image,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Login(ctx context.Context, creds Credentials) (User, error) {
	return c.postUser(ctx, "/api/users/login", creds)
}

func (c *Client) Register(ctx context.Context, creds Credentials) (User, error) {
	return c.postUser(ctx, "/api/users", creds)
}

func (c *Client) postUser(ctx context.Context, path string, creds Credentials) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, path, "", map[string]Credentials{"user": creds}, &out)
	return out.User, err
}

// CurrentUser fetches the authenticated user's projection. The result
// carries no tokens.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/user", accessToken, nil, &out)
	return out.User, err
}

// Refresh exchanges a refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users/refresh", "", map[string]string{"refresh_token": refreshToken}, &out)
	return out.Token, err
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/api/users/logout", accessToken, struct{}{}, nil)
}

// UpdateUser updates profile fields on the server. Nil pointers leave
// the field unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, accessToken string, req UpdateUserRequest) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodPut, "/api/user", accessToken, map[string]UpdateUserRequest{"user": req}, &out)
	return out.User, err
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error APIError `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		apiErr.Error.Status = resp.StatusCode
		return &apiErr.Error
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
