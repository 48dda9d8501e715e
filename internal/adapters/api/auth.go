package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

// Login posts to /auth/login/. Any response body without an access
// token means invalid credentials, whatever the HTTP status says.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", &ports.APIError{Err: err}
	}

	_, body, err := c.do(ctx, http.MethodPost, "/auth/login/", "", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	var resp struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Access == "" {
		return "", ports.ErrInvalidLogin
	}
	return resp.Access, nil
}

// Register posts to /auth/register/. Non-2xx surfaces the server's
// error detail when the body carries one.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return &ports.APIError{Err: err}
	}

	status, body, err := c.do(ctx, http.MethodPost, "/auth/register/", "", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if !ok(status) {
		return statusError(status, body)
	}
	return nil
}
