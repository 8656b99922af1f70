package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/target/foodcart/internal/domain/auth"
	"github.com/target/foodcart/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthGateway = (*StubGateway)(nil)
	_ ports.TokenStore  = (*MemoryTokenStore)(nil)
)

// StubGateway answers gateway calls from canned results or funcs and counts calls.
type StubGateway struct {
	LoginFunc  func(ctx context.Context, email, password string) domainauth.Result
	SignupFunc func(ctx context.Context, email, password string) domainauth.Result
	VerifyFunc func(ctx context.Context) domainauth.Result

	LoginResult  domainauth.Result
	SignupResult domainauth.Result
	VerifyResult domainauth.Result

	// Tokens, when set, makes VerifyToken answer "No token found" without
	// consulting VerifyFunc/VerifyResult if no token is stored.
	Tokens ports.TokenStore

	mu          sync.Mutex
	loginCalls  int
	signupCalls int
	verifyCalls int
}

func (g *StubGateway) Login(ctx context.Context, email, password string) domainauth.Result {
	g.mu.Lock()
	g.loginCalls++
	g.mu.Unlock()
	if g.LoginFunc != nil {
		return g.LoginFunc(ctx, email, password)
	}
	return g.LoginResult
}

func (g *StubGateway) Signup(ctx context.Context, email, password string) domainauth.Result {
	g.mu.Lock()
	g.signupCalls++
	g.mu.Unlock()
	if g.SignupFunc != nil {
		return g.SignupFunc(ctx, email, password)
	}
	return g.SignupResult
}

func (g *StubGateway) VerifyToken(ctx context.Context) domainauth.Result {
	if g.Tokens != nil {
		if tok, err := g.Tokens.Read(ctx); err != nil || tok == "" {
			return domainauth.Result{Success: false, Message: domainauth.MessageNoToken}
		}
	}
	g.mu.Lock()
	g.verifyCalls++
	g.mu.Unlock()
	if g.VerifyFunc != nil {
		return g.VerifyFunc(ctx)
	}
	return g.VerifyResult
}

// LoginCalls returns how many times Login was invoked.
func (g *StubGateway) LoginCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loginCalls
}

// SignupCalls returns how many times Signup was invoked.
func (g *StubGateway) SignupCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.signupCalls
}

// VerifyCalls returns how many verifications reached the network side.
func (g *StubGateway) VerifyCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verifyCalls
}

// MemoryTokenStore is an in-memory token store for unit tests.
// Setting ReadErr, WriteErr or DeleteErr makes the matching call fail.
type MemoryTokenStore struct {
	ReadErr   error
	WriteErr  error
	DeleteErr error

	mu      sync.Mutex
	token   string
	writes  int
	deletes int
}

// NewMemoryTokenStore creates a store preloaded with token ("" for empty).
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Read(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.token, nil
}

func (m *MemoryTokenStore) Write(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.token = token
	m.writes++
	return nil
}

func (m *MemoryTokenStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.token = ""
	m.deletes++
	return nil
}

// Token returns the stored token without going through Read.
func (m *MemoryTokenStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Writes returns the number of successful writes.
func (m *MemoryTokenStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Deletes returns the number of successful deletes.
func (m *MemoryTokenStore) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}
