package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

// User-facing auth strings.
const (
	MsgSessionExpired   = "Session expired. Please login again."
	MsgLoginRequired    = "You need to login first. Run 'docchat login'."
	MsgInvalidLogin     = "Invalid username or password"
	MsgConnectionError  = "Connection error. Is the server running?"
	MsgRegisterFallback = "Registration failed. Try again."
)

// AuthService guards the persisted credential. Any component seeing a
// 401 calls Logout; the navigate-to-login hook fires at most once per
// logged-in epoch no matter how many 401s race in.
type AuthService struct {
	api   ports.AuthAPI
	creds ports.CredentialStore

	mu        sync.Mutex
	loggedOut bool
	onLogout  func()
	observers []func()
}

func NewAuthService(api ports.AuthAPI, creds ports.CredentialStore) *AuthService {
	return &AuthService{api: api, creds: creds}
}

// SetLogoutHook installs the one-shot navigation command executed on
// logout. The hook runs outside the service's lock.
func (s *AuthService) SetLogoutHook(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = fn
}

// addLogoutObserver registers state-reset work that runs on every
// logout, once per epoch, before the navigation hook. Unlike the hook,
// observers survive the whole process lifetime.
func (s *AuthService) addLogoutObserver(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// HasCredential reports whether a persisted bearer token exists.
func (s *AuthService) HasCredential() bool {
	return s.creds.Exists()
}

// Token returns the persisted bearer token, or "" when absent.
func (s *AuthService) Token() string {
	tok, err := s.creds.Token()
	if err != nil {
		return ""
	}
	return tok
}

// Logout clears the credential and fires the navigation hook exactly
// once per epoch. Safe to call repeatedly.
func (s *AuthService) Logout() {
	s.mu.Lock()
	if s.loggedOut {
		s.mu.Unlock()
		return
	}
	s.loggedOut = true
	hook := s.onLogout
	observers := s.observers
	s.mu.Unlock()

	_ = s.creds.Clear()
	// State resets before navigation: by the time the UI reacts, no
	// in-flight response can still mutate the closed session.
	for _, fn := range observers {
		fn()
	}
	if hook != nil {
		hook()
	}
}

// Login exchanges credentials for a token and starts a fresh epoch. A
// response body without an access token is invalid credentials, no
// matter what status the server chose.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidLogin) {
			return errors.New(MsgInvalidLogin)
		}
		var apiErr *ports.APIError
		if errors.As(err, &apiErr) && apiErr.Transport() {
			return errors.New(MsgConnectionError)
		}
		return err
	}
	if err := s.creds.Save(token); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	s.mu.Lock()
	s.loggedOut = false
	s.mu.Unlock()
	return nil
}

// Register creates an account. Server-provided detail is surfaced
// verbatim when present.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	err := s.api.Register(ctx, username, email, password)
	if err == nil {
		return nil
	}
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Transport() {
			return errors.New(MsgConnectionError)
		}
		if apiErr.Detail != "" {
			return errors.New(apiErr.Detail)
		}
	}
	return errors.New(MsgRegisterFallback)
}

// expire handles a detected 401: session-expired notification plus a
// single logout. Shared by the registry and session services.
func (s *AuthService) expire(notify *Notifier) {
	notify.Show(MsgSessionExpired, domain.SeverityError)
	s.Logout()
}
