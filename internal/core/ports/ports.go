package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
)

// APIError is the structured failure of a backend call. A zero
// StatusCode means the request never produced an HTTP response
// (connection refused, DNS failure, timeout) — a transport failure,
// which callers must keep distinct from HTTP-level failures.
type APIError struct {
	StatusCode int
	Detail     string // server-provided message, when the body carried one
	Err        error  // underlying transport error, when transport
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// Transport reports whether the failure happened below the HTTP layer.
func (e *APIError) Transport() bool { return e.StatusCode == 0 }

// ErrInvalidLogin signals a login response without an access token,
// regardless of HTTP status.
var ErrInvalidLogin = errors.New("invalid username or password")

// RegistryAPI is the asset registry endpoint surface.
type RegistryAPI interface {
	// ListAssets fetches the full registry listing.
	ListAssets(ctx context.Context, token string) ([]domain.Asset, error)

	// UploadAsset submits a file as multipart form data. The success
	// body is irrelevant beyond a 2xx status.
	UploadAsset(ctx context.Context, token string, file *domain.UploadFile) error

	// DeleteAsset removes an asset by id.
	DeleteAsset(ctx context.Context, token string, id int64) error
}

// ChatAPI is the question-answering endpoint surface.
type ChatAPI interface {
	// Ask submits a question scoped to assetIDs. A nil assetIDs slice
	// omits the field entirely, which the backend reads as "search
	// across all documents".
	Ask(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error)
}

// AuthAPI is the credential endpoint surface.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token. A response body
	// without a token yields ErrInvalidLogin whatever the status.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates an account. Non-2xx failures surface the
	// server-provided detail via APIError.
	Register(ctx context.Context, username, email, password string) error
}

// CredentialStore persists the bearer token between runs.
type CredentialStore interface {
	Token() (string, error)
	Save(token string) error
	Clear() error
	Exists() bool
}

// Confirmer is the interactive confirmation capability required before
// destructive operations. A false result aborts with no side effects.
type Confirmer interface {
	Confirm(prompt string) bool
}
