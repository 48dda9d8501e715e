package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

const (
	MsgNetworkError    = "Network error. Check your connection."
	MsgEmptyQuestion   = "Type a question first"
	MsgSendBusy        = "Still waiting for the previous answer"
	MsgInvalidResponse = "Invalid response from server"
	MsgInvalidRequest  = "Invalid request"
	MsgFilesNotFound   = "One or more selected files were not found. Refresh and try again."
	MsgServerError     = "Server error. Try again later."
)

// SendStatus tags the outcome of a Send.
type SendStatus int

const (
	SendOK SendStatus = iota
	SendRejected // blank input; nothing appended, no network call
	SendBusy     // a request is already in flight
	SendAuthRequired
	SendAuthExpired
	SendInvalidResponse // 2xx without an answer
	SendBadRequest
	SendNotFound
	SendServerFault
	SendFailed
	SendTransport
	SendStale // session was reset while the request was in flight
)

type SendOutcome struct {
	Status SendStatus
	Detail string
}

// SessionService owns the conversation: an append-only message history
// and the in-flight-request guard. At most one chat request may be in
// flight at a time; a second Send is rejected synchronously, never
// queued.
type SessionService struct {
	api       ports.ChatAPI
	auth      *AuthService
	notify    *Notifier
	selection *domain.SelectionSet

	mu       sync.Mutex
	messages []domain.Message
	sending  bool
	gen      uint64
}

func NewSessionService(api ports.ChatAPI, auth *AuthService, notify *Notifier, selection *domain.SelectionSet) *SessionService {
	s := &SessionService{
		api:       api,
		auth:      auth,
		notify:    notify,
		selection: selection,
	}
	// A response resolving after logout must not land in the next
	// session's history.
	auth.addLogoutObserver(s.Reset)
	return s
}

// Messages returns a snapshot of the history.
func (s *SessionService) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Sending reports whether a chat request is in flight.
func (s *SessionService) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Reset starts a new generation: any response still in flight from the
// previous one is discarded instead of mutating history. Called when
// the session is superseded, e.g. on logout.
func (s *SessionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

// Send runs one question/answer exchange. The user message is appended
// before the network round trip (optimistic echo). Every failure after
// the echo lands in both channels: an assistant-role error message in
// the history and a notification with the same text. The sending flag
// is released on every exit path.
func (s *SessionService) Send(ctx context.Context, question string) SendOutcome {
	question = strings.TrimSpace(question)

	s.mu.Lock()
	if question == "" {
		s.mu.Unlock()
		s.notify.Show(MsgEmptyQuestion, domain.SeverityWarning)
		return SendOutcome{Status: SendRejected, Detail: MsgEmptyQuestion}
	}
	if s.sending {
		s.mu.Unlock()
		s.notify.Show(MsgSendBusy, domain.SeverityWarning)
		return SendOutcome{Status: SendBusy, Detail: MsgSendBusy}
	}
	s.sending = true
	gen := s.gen
	s.messages = append(s.messages, domain.Message{Role: domain.RoleUser, Text: question})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	if !s.auth.HasCredential() {
		s.appendError(gen, MsgLoginRequired)
		s.auth.Logout()
		return SendOutcome{Status: SendAuthRequired, Detail: MsgLoginRequired}
	}

	// nil when the selection is empty: the field must be omitted from
	// the request, which means "all documents". An empty list does not.
	assetIDs := s.selection.IDs()

	answer, err := s.api.Ask(ctx, s.auth.Token(), question, assetIDs)
	if err == nil {
		if strings.TrimSpace(answer.Answer) == "" {
			s.appendError(gen, MsgInvalidResponse)
			return SendOutcome{Status: SendInvalidResponse, Detail: MsgInvalidResponse}
		}
		sources := answer.Sources
		if sources == nil {
			sources = []domain.Source{}
		}
		if !s.append(gen, domain.Message{Role: domain.RoleAssistant, Text: answer.Answer, Sources: sources}) {
			return SendOutcome{Status: SendStale}
		}
		return SendOutcome{Status: SendOK}
	}

	var apiErr *ports.APIError
	if !errors.As(err, &apiErr) {
		detail := "Request failed: " + err.Error()
		s.appendError(gen, detail)
		return SendOutcome{Status: SendFailed, Detail: detail}
	}

	switch {
	case apiErr.Transport():
		s.appendError(gen, MsgNetworkError)
		return SendOutcome{Status: SendTransport, Detail: MsgNetworkError}
	case apiErr.StatusCode == 401:
		// Both channels fire here too, then the one-shot logout.
		s.appendError(gen, MsgSessionExpired)
		s.auth.Logout()
		return SendOutcome{Status: SendAuthExpired, Detail: MsgSessionExpired}
	case apiErr.StatusCode == 400:
		detail := apiErr.Detail
		if detail == "" {
			detail = MsgInvalidRequest
		}
		s.appendError(gen, detail)
		return SendOutcome{Status: SendBadRequest, Detail: detail}
	case apiErr.StatusCode == 404:
		s.appendError(gen, MsgFilesNotFound)
		return SendOutcome{Status: SendNotFound, Detail: MsgFilesNotFound}
	case apiErr.StatusCode == 500:
		s.appendError(gen, MsgServerError)
		return SendOutcome{Status: SendServerFault, Detail: MsgServerError}
	default:
		detail := fmt.Sprintf("Request failed with status %d", apiErr.StatusCode)
		s.appendError(gen, detail)
		return SendOutcome{Status: SendFailed, Detail: detail}
	}
}

// append adds msg to the history unless the session generation moved on
// while the request was in flight.
func (s *SessionService) append(gen uint64, msg domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.messages = append(s.messages, msg)
	return true
}

// appendError records a failure in both channels: history and the
// notification slot.
func (s *SessionService) appendError(gen uint64, text string) {
	s.append(gen, domain.Message{Role: domain.RoleAssistant, Text: text, Sources: []domain.Source{}})
	s.notify.Show(text, domain.SeverityError)
}
