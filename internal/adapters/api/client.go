package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

// Client talks to the docchat backend. Every call returns either a
// decoded body or a *ports.APIError; transport failures carry a zero
// status code so callers can tell them apart from HTTP-level failures.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do issues one request and returns the status code plus the raw body.
// A nil error with a non-2xx status is possible; callers map statuses
// themselves. Transport failures come back as *ports.APIError with
// StatusCode 0.
func (c *Client) do(ctx context.Context, method, path, token, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, &ports.APIError{Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return 0, nil, &ports.APIError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, &ports.APIError{Err: err}
	}
	c.log.Debug("request done", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode)
	return resp.StatusCode, data, nil
}

// statusError builds the APIError for a non-2xx response, pulling the
// server's detail message out of the body when one is there.
func statusError(status int, body []byte) *ports.APIError {
	return &ports.APIError{StatusCode: status, Detail: extractDetail(body)}
}

// extractDetail digs the human-readable message out of an error body.
// The backend uses {"error": ...}; its framework uses {"detail": ...}.
func extractDetail(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
