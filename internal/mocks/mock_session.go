package mocks

import (
	"context"

	"github.com/you/shopfront/domain"
)

// MockTokenVault implements domain.TokenVault in memory for testing
type MockTokenVault struct {
	LoadFunc  func(ctx context.Context) (string, error)
	StoreFunc func(ctx context.Context, token string) error
	ClearFunc func(ctx context.Context) error

	Stored    string
	HasStored bool
}

func NewMockTokenVault() *MockTokenVault {
	return &MockTokenVault{}
}

// Seed places a token in the vault as if persisted by an earlier process
func (m *MockTokenVault) Seed(token string) {
	m.Stored = token
	m.HasStored = true
}

func (m *MockTokenVault) Load(ctx context.Context) (string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	if !m.HasStored {
		return "", domain.ErrTokenNotPersisted
	}
	return m.Stored, nil
}

func (m *MockTokenVault) Store(ctx context.Context, token string) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, token)
	}
	m.Stored = token
	m.HasStored = true
	return nil
}

func (m *MockTokenVault) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.Stored = ""
	m.HasStored = false
	return nil
}

// MockSessionReader implements domain.SessionReader for testing
type MockSessionReader struct {
	ReadyFunc         func() bool
	AuthenticatedFunc func() bool
	VerifiedFunc      func() bool
	ClaimsFunc        func() (*domain.Claims, bool)
	TokenFunc         func() (string, bool)
}

func NewMockSessionReader() *MockSessionReader {
	return &MockSessionReader{}
}

func (m *MockSessionReader) Ready() bool {
	if m.ReadyFunc != nil {
		return m.ReadyFunc()
	}
	return true
}

func (m *MockSessionReader) Authenticated() bool {
	if m.AuthenticatedFunc != nil {
		return m.AuthenticatedFunc()
	}
	return false
}

func (m *MockSessionReader) Verified() bool {
	if m.VerifiedFunc != nil {
		return m.VerifiedFunc()
	}
	return false
}

func (m *MockSessionReader) Claims() (*domain.Claims, bool) {
	if m.ClaimsFunc != nil {
		return m.ClaimsFunc()
	}
	return nil, false
}

func (m *MockSessionReader) Token() (string, bool) {
	if m.TokenFunc != nil {
		return m.TokenFunc()
	}
	return "", false
}

// MockSessionWriter implements domain.SessionWriter for testing
type MockSessionWriter struct {
	LoginFunc  func(ctx context.Context, token string) error
	LoginCalls int
	LastToken  string
}

func NewMockSessionWriter() *MockSessionWriter {
	return &MockSessionWriter{}
}

func (m *MockSessionWriter) Login(ctx context.Context, token string) error {
	m.LoginCalls++
	m.LastToken = token
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, token)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.TokenVault    = (*MockTokenVault)(nil)
	_ domain.SessionReader = (*MockSessionReader)(nil)
	_ domain.SessionWriter = (*MockSessionWriter)(nil)
)
