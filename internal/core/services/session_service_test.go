package services

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports/mocks"
)

type sessionFixture struct {
	chat      *mocks.MockChatAPI
	creds     *mocks.MockCredentialStore
	auth      *AuthService
	notify    *Notifier
	selection *domain.SelectionSet
	svc       *SessionService
}

func newSessionFixture(token string) *sessionFixture {
	chat := mocks.NewMockChatAPI()
	creds := mocks.NewMockCredentialStore(token)
	auth := NewAuthService(mocks.NewMockAuthAPI(), creds)
	notify := NewNotifier()
	selection := domain.NewSelectionSet()
	return &sessionFixture{
		chat:      chat,
		creds:     creds,
		auth:      auth,
		notify:    notify,
		selection: selection,
		svc:       NewSessionService(chat, auth, notify, selection),
	}
}

func TestSessionSendBlankQuestion(t *testing.T) {
	f := newSessionFixture("tok")

	outcome := f.svc.Send(context.Background(), "   \n\t ")

	if outcome.Status != SendRejected {
		t.Fatalf("status = %v, want SendRejected", outcome.Status)
	}
	if len(f.chat.Questions()) != 0 {
		t.Error("blank input must not reach the network")
	}
	if len(f.svc.Messages()) != 0 {
		t.Error("blank input must not mutate history")
	}
	notif, _, visible := f.notify.Current()
	if !visible || notif.Text != MsgEmptyQuestion {
		t.Errorf("notification = %+v visible=%v", notif, visible)
	}
}

func TestSessionSendSuccess(t *testing.T) {
	f := newSessionFixture("tok")
	f.chat.Answer = domain.Answer{
		Answer:  "Refunds are processed within 30 days.",
		Sources: []domain.Source{{Filename: "policy.pdf", Page: 3}},
	}

	outcome := f.svc.Send(context.Background(), "How long do refunds take?")

	if outcome.Status != SendOK {
		t.Fatalf("status = %v, want SendOK", outcome.Status)
	}

	messages := f.svc.Messages()
	if len(messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(messages))
	}
	if messages[0].Role != domain.RoleUser || messages[0].Text != "How long do refunds take?" {
		t.Errorf("unexpected user echo: %+v", messages[0])
	}
	answer := messages[1]
	if answer.Role != domain.RoleAssistant || answer.Text != "Refunds are processed within 30 days." {
		t.Errorf("unexpected answer: %+v", answer)
	}
	if len(answer.Sources) != 1 || answer.Sources[0].Filename != "policy.pdf" || answer.Sources[0].Page != 3 {
		t.Errorf("unexpected sources: %+v", answer.Sources)
	}
	if f.svc.Sending() {
		t.Error("sending flag still set after completion")
	}
}

func TestSessionSendTrimsQuestion(t *testing.T) {
	f := newSessionFixture("tok")
	f.chat.Answer = domain.Answer{Answer: "yes"}

	f.svc.Send(context.Background(), "  padded question  ")

	questions := f.chat.Questions()
	if len(questions) != 1 || questions[0] != "padded question" {
		t.Errorf("questions = %v, want the trimmed form", questions)
	}
}

func TestSessionSendSelectionScoping(t *testing.T) {
	t.Run("empty selection omits asset ids", func(t *testing.T) {
		f := newSessionFixture("tok")
		f.chat.Answer = domain.Answer{Answer: "ok"}

		f.svc.Send(context.Background(), "question")

		ids := f.chat.AssetIDs()
		if len(ids) != 1 || ids[0] != nil {
			t.Errorf("asset ids = %v, want [nil] (field omitted, meaning all documents)", ids)
		}
	})

	t.Run("populated selection passes ids", func(t *testing.T) {
		f := newSessionFixture("tok")
		f.chat.Answer = domain.Answer{Answer: "ok"}
		f.selection.Toggle(7)
		f.selection.Toggle(2)

		f.svc.Send(context.Background(), "question")

		ids := f.chat.AssetIDs()
		if len(ids) != 1 || !slices.Equal(ids[0], []int64{2, 7}) {
			t.Errorf("asset ids = %v, want [[2 7]]", ids)
		}
	})
}

func TestSessionSendNilSourcesNormalized(t *testing.T) {
	f := newSessionFixture("tok")
	f.chat.Answer = domain.Answer{Answer: "text only", Sources: nil}

	f.svc.Send(context.Background(), "question")

	messages := f.svc.Messages()
	if messages[1].Sources == nil {
		t.Error("answer without sources must carry an empty slice, not nil")
	}
}

func TestSessionSendEmptyAnswerIsInvalid(t *testing.T) {
	f := newSessionFixture("tok")
	f.chat.Answer = domain.Answer{Answer: "   "}

	outcome := f.svc.Send(context.Background(), "question")

	if outcome.Status != SendInvalidResponse {
		t.Fatalf("status = %v, want SendInvalidResponse", outcome.Status)
	}
	messages := f.svc.Messages()
	if len(messages) != 2 || messages[1].Text != MsgInvalidResponse {
		t.Errorf("history = %+v, want error message appended", messages)
	}
}

func TestSessionSendWithoutCredential(t *testing.T) {
	f := newSessionFixture("")

	outcome := f.svc.Send(context.Background(), "question")

	if outcome.Status != SendAuthRequired {
		t.Fatalf("status = %v, want SendAuthRequired", outcome.Status)
	}
	if len(f.chat.Questions()) != 0 {
		t.Error("missing credential must short-circuit before the network")
	}
	messages := f.svc.Messages()
	if len(messages) != 2 || messages[1].Text != MsgLoginRequired {
		t.Errorf("history = %+v", messages)
	}
}

func TestSessionSendFailureMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus SendStatus
		wantText   string
	}{
		{
			name:       "transport failure",
			err:        &ports.APIError{Err: errors.New("connection refused")},
			wantStatus: SendTransport,
			wantText:   MsgNetworkError,
		},
		{
			name:       "bad request with detail",
			err:        &ports.APIError{StatusCode: 400, Detail: "Question too long"},
			wantStatus: SendBadRequest,
			wantText:   "Question too long",
		},
		{
			name:       "bad request without detail",
			err:        &ports.APIError{StatusCode: 400},
			wantStatus: SendBadRequest,
			wantText:   MsgInvalidRequest,
		},
		{
			name:       "selected files gone",
			err:        &ports.APIError{StatusCode: 404},
			wantStatus: SendNotFound,
			wantText:   MsgFilesNotFound,
		},
		{
			name:       "server fault",
			err:        &ports.APIError{StatusCode: 500},
			wantStatus: SendServerFault,
			wantText:   MsgServerError,
		},
		{
			name:       "unmapped status",
			err:        &ports.APIError{StatusCode: 502},
			wantStatus: SendFailed,
			wantText:   "Request failed with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture("tok")
			f.chat.AskErr = tt.err

			outcome := f.svc.Send(context.Background(), "question")

			if outcome.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", outcome.Status, tt.wantStatus)
			}

			// Every failure lands in both channels.
			messages := f.svc.Messages()
			if len(messages) != 2 || messages[1].Role != domain.RoleAssistant || messages[1].Text != tt.wantText {
				t.Errorf("history = %+v, want assistant error %q", messages, tt.wantText)
			}
			notif, _, visible := f.notify.Current()
			if !visible || notif.Text != tt.wantText {
				t.Errorf("notification = %+v visible=%v, want %q", notif, visible, tt.wantText)
			}
			if f.svc.Sending() {
				t.Error("sending flag still set after failure")
			}
		})
	}
}

func TestSessionSendAuthExpired(t *testing.T) {
	f := newSessionFixture("tok")
	f.chat.AskErr = &ports.APIError{StatusCode: 401}

	var hookCalls int
	f.auth.SetLogoutHook(func() { hookCalls++ })

	outcome := f.svc.Send(context.Background(), "question")

	if outcome.Status != SendAuthExpired {
		t.Fatalf("status = %v, want SendAuthExpired", outcome.Status)
	}
	messages := f.svc.Messages()
	if messages[len(messages)-1].Text != MsgSessionExpired {
		t.Errorf("last message = %+v", messages[len(messages)-1])
	}
	if hookCalls != 1 {
		t.Errorf("logout hook fired %d times, want 1", hookCalls)
	}
	if f.creds.Exists() {
		t.Error("credential must be cleared on 401")
	}
}

func TestSessionSendBusy(t *testing.T) {
	f := newSessionFixture("tok")

	release := make(chan struct{})
	started := make(chan struct{})
	f.chat.AskFunc = func(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error) {
		close(started)
		<-release
		return domain.Answer{Answer: "late answer"}, nil
	}

	done := make(chan SendOutcome, 1)
	go func() {
		done <- f.svc.Send(context.Background(), "first")
	}()
	<-started

	outcome := f.svc.Send(context.Background(), "second")
	if outcome.Status != SendBusy {
		t.Fatalf("status = %v, want SendBusy", outcome.Status)
	}

	// The rejected send must not have echoed its question.
	messages := f.svc.Messages()
	for _, msg := range messages {
		if msg.Text == "second" {
			t.Error("busy-rejected question leaked into history")
		}
	}

	close(release)
	if first := <-done; first.Status != SendOK {
		t.Fatalf("first send = %v, want SendOK", first.Status)
	}
}

func TestSessionResetDiscardsInFlightAnswer(t *testing.T) {
	f := newSessionFixture("tok")

	release := make(chan struct{})
	started := make(chan struct{})
	f.chat.AskFunc = func(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error) {
		close(started)
		<-release
		return domain.Answer{Answer: "stale answer"}, nil
	}

	done := make(chan SendOutcome, 1)
	go func() {
		done <- f.svc.Send(context.Background(), "question")
	}()
	<-started

	// Session superseded while the request is in flight.
	f.svc.Reset()
	close(release)

	outcome := <-done
	if outcome.Status != SendStale {
		t.Fatalf("status = %v, want SendStale", outcome.Status)
	}
	for _, msg := range f.svc.Messages() {
		if msg.Text == "stale answer" {
			t.Error("stale answer landed in history after reset")
		}
	}

	// The service accepts new sends afterwards.
	f.chat.AskFunc = nil
	f.chat.Answer = domain.Answer{Answer: "fresh"}
	deadline := time.Now().Add(time.Second)
	for f.svc.Sending() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if next := f.svc.Send(context.Background(), "again"); next.Status != SendOK {
		t.Fatalf("send after reset = %v, want SendOK", next.Status)
	}
}

func TestSessionLogoutDiscardsInFlightAnswer(t *testing.T) {
	f := newSessionFixture("tok")

	release := make(chan struct{})
	started := make(chan struct{})
	f.chat.AskFunc = func(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error) {
		close(started)
		<-release
		return domain.Answer{Answer: "stale answer"}, nil
	}

	done := make(chan SendOutcome, 1)
	go func() {
		done <- f.svc.Send(context.Background(), "question")
	}()
	<-started

	// Logout alone must close the session; nothing calls Reset here.
	f.auth.Logout()
	close(release)

	outcome := <-done
	if outcome.Status != SendStale {
		t.Fatalf("status = %v, want SendStale", outcome.Status)
	}
	for _, msg := range f.svc.Messages() {
		if msg.Text == "stale answer" {
			t.Error("stale answer landed in history after logout")
		}
	}
}
