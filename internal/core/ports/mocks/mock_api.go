package mocks

import (
	"context"
	"sync"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
)

// MockRegistryAPI is a mock implementation of the RegistryAPI interface for testing
type MockRegistryAPI struct {
	mu sync.Mutex

	Assets    []domain.Asset
	ListErr   error
	UploadErr error
	DeleteErr error

	// UploadFunc, when set, overrides UploadErr.
	UploadFunc func(ctx context.Context, token string, file *domain.UploadFile) error

	listCalls   int
	uploadCalls []*domain.UploadFile
	deleteCalls []int64
}

// NewMockRegistryAPI creates a new mock registry API
func NewMockRegistryAPI() *MockRegistryAPI {
	return &MockRegistryAPI{}
}

// ListAssets returns the configured listing or error
func (m *MockRegistryAPI) ListAssets(ctx context.Context, token string) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	assets := make([]domain.Asset, len(m.Assets))
	copy(assets, m.Assets)
	return assets, nil
}

// UploadAsset records the upload and returns the configured error
func (m *MockRegistryAPI) UploadAsset(ctx context.Context, token string, file *domain.UploadFile) error {
	m.mu.Lock()
	m.uploadCalls = append(m.uploadCalls, file)
	fn := m.UploadFunc
	err := m.UploadErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, file)
	}
	return err
}

// DeleteAsset records the deletion and returns the configured error
func (m *MockRegistryAPI) DeleteAsset(ctx context.Context, token string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, id)
	return m.DeleteErr
}

// ListCalls reports how many times ListAssets was invoked
func (m *MockRegistryAPI) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// UploadCalls returns the uploads that were attempted
func (m *MockRegistryAPI) UploadCalls() []*domain.UploadFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]*domain.UploadFile, len(m.uploadCalls))
	copy(calls, m.uploadCalls)
	return calls
}

// DeleteCalls returns the asset ids that were deleted
func (m *MockRegistryAPI) DeleteCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]int64, len(m.deleteCalls))
	copy(calls, m.deleteCalls)
	return calls
}

// --- MockChatAPI ---

// MockChatAPI is a mock implementation of the ChatAPI interface
type MockChatAPI struct {
	mu sync.Mutex

	Answer domain.Answer
	AskErr error

	// AskFunc, when set, overrides the canned Answer/AskErr pair.
	AskFunc func(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error)

	questions []string
	assetIDs  [][]int64
}

// NewMockChatAPI creates a new mock chat API
func NewMockChatAPI() *MockChatAPI {
	return &MockChatAPI{}
}

// Ask records the call and returns the configured answer or error
func (m *MockChatAPI) Ask(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error) {
	m.mu.Lock()
	m.questions = append(m.questions, question)
	m.assetIDs = append(m.assetIDs, assetIDs)
	fn := m.AskFunc
	answer, err := m.Answer, m.AskErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, question, assetIDs)
	}
	return answer, err
}

// Questions returns the questions that were asked
func (m *MockChatAPI) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	qs := make([]string, len(m.questions))
	copy(qs, m.questions)
	return qs
}

// AssetIDs returns the scoping slices passed to each Ask call
func (m *MockChatAPI) AssetIDs() [][]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([][]int64, len(m.assetIDs))
	copy(ids, m.assetIDs)
	return ids
}

// --- MockAuthAPI ---

// MockAuthAPI is a mock implementation of the AuthAPI interface
type MockAuthAPI struct {
	mu sync.Mutex

	Token       string
	LoginErr    error
	RegisterErr error

	loginCalls    int
	registerCalls int
}

// NewMockAuthAPI creates a new mock auth API
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{Token: "mock-token"}
}

// Login returns the configured token or error
func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginCalls++
	if m.LoginErr != nil {
		return "", m.LoginErr
	}
	return m.Token, nil
}

// Register returns the configured error
func (m *MockAuthAPI) Register(ctx context.Context, username, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registerCalls++
	return m.RegisterErr
}

// LoginCalls reports how many times Login was invoked
func (m *MockAuthAPI) LoginCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginCalls
}

// --- MockCredentialStore ---

// MockCredentialStore is an in-memory CredentialStore
type MockCredentialStore struct {
	mu    sync.Mutex
	token string

	SaveErr  error
	ClearErr error

	clearCalls int
}

// NewMockCredentialStore creates a store, optionally pre-seeded with a token
func NewMockCredentialStore(token string) *MockCredentialStore {
	return &MockCredentialStore{token: token}
}

// Token returns the stored token
func (m *MockCredentialStore) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Save stores the token
func (m *MockCredentialStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	return nil
}

// Clear wipes the stored token
func (m *MockCredentialStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	return nil
}

// Exists reports whether a token is stored
func (m *MockCredentialStore) Exists() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// ClearCalls reports how many times Clear was invoked
func (m *MockCredentialStore) ClearCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearCalls
}

// --- MockConfirmer ---

// MockConfirmer answers every confirmation with a fixed result
type MockConfirmer struct {
	mu      sync.Mutex
	Result  bool
	prompts []string
}

// NewMockConfirmer creates a confirmer with the given fixed answer
func NewMockConfirmer(result bool) *MockConfirmer {
	return &MockConfirmer{Result: result}
}

// Confirm records the prompt and returns the fixed answer
func (m *MockConfirmer) Confirm(prompt string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.Result
}

// Prompts returns the prompts shown so far
func (m *MockConfirmer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	prompts := make([]string, len(m.prompts))
	copy(prompts, m.prompts)
	return prompts
}
