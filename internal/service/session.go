package service

import (
	"context"
	"log/slog"
	"sync"

	domainauth "github.com/target/foodcart/internal/domain/auth"
	"github.com/target/foodcart/internal/ports"
)

const (
	messageTokenStorage = "Unable to save your session. Please try again."
	messageSuperseded   = "Request superseded by a newer attempt"
	messageStoreClosed  = "Session store is closed"
)

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	Gateway ports.AuthGateway
	Tokens  ports.TokenStore
	Logger  *slog.Logger

	// DiscardStale drops the result of an attempt once a newer attempt (or a logout)
	// has started. When false the last attempt to resolve wins.
	DiscardStale bool
}

// SessionStore is the authoritative in-memory record of who is logged in.
// It is safe for concurrent use. Subscribers are called outside the internal lock,
// in transition order, on whichever goroutine is draining the queue.
type SessionStore struct {
	gateway      ports.AuthGateway
	tokens       ports.TokenStore
	logger       *slog.Logger
	discardStale bool

	mu         sync.Mutex
	state      domainauth.Session
	seq        uint64
	closed     bool
	subs       map[uint64]func(domainauth.Session)
	nextSub    uint64
	queue      []domainauth.Session
	delivering bool
}

// NewSessionStore constructs a SessionStore in the initial pending state.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		gateway:      opts.Gateway,
		tokens:       opts.Tokens,
		logger:       logger.With("component", "session_store"),
		discardStale: opts.DiscardStale,
		state:        domainauth.InitialSession(),
		subs:         make(map[uint64]func(domainauth.Session)),
	}
}

// State returns a snapshot of the current session.
func (s *SessionStore) State() domainauth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive every applied transition. The returned
// function removes the subscription and is safe to call more than once.
func (s *SessionStore) Subscribe(fn func(domainauth.Session)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close disposes the store. Results arriving afterwards are discarded and
// subscribers are no longer notified.
func (s *SessionStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.subs = make(map[uint64]func(domainauth.Session))
	s.queue = nil
	s.mu.Unlock()
}

// Login authenticates with email and password and persists the issued token.
func (s *SessionStore) Login(ctx context.Context, email, password string) domainauth.OperationResult {
	seq, ok := s.begin(domainauth.LoginStarted{})
	if !ok {
		return domainauth.OperationResult{Success: false, Message: messageStoreClosed}
	}

	res := s.gateway.Login(ctx, email, password)
	if res.Success && res.Token == "" {
		s.logger.WarnContext(ctx, "login succeeded without a token")
		if !s.finish(seq, domainauth.LoginFailed{Message: domainauth.MessageLoginFailed}) {
			return s.discarded()
		}
		return domainauth.OperationResult{Success: false, Message: domainauth.MessageLoginFailed}
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = domainauth.MessageLoginFailed
		}
		if !s.finish(seq, domainauth.LoginFailed{Message: msg}) {
			return s.discarded()
		}
		return domainauth.OperationResult{Success: false, Message: res.Message, Errors: res.Errors}
	}

	if !s.current(seq) {
		return s.discarded()
	}
	if err := s.tokens.Write(ctx, res.Token); err != nil {
		s.logger.ErrorContext(ctx, "persist token failed", "error", err)
		if !s.finish(seq, domainauth.LoginFailed{Message: messageTokenStorage}) {
			return s.discarded()
		}
		return domainauth.OperationResult{Success: false, Message: messageTokenStorage}
	}

	user := domainauth.User{Email: email}
	if res.User != nil {
		user = *res.User
	}
	if !s.finish(seq, domainauth.LoginSucceeded{User: user, Token: res.Token}) {
		return s.discarded()
	}
	s.logger.InfoContext(ctx, "login succeeded", "email", user.Email)
	return domainauth.OperationResult{Success: true, Message: res.Message}
}

// Signup registers an account. It never establishes a session and never writes a token.
func (s *SessionStore) Signup(ctx context.Context, email, password string) domainauth.OperationResult {
	seq, ok := s.begin(domainauth.SignupStarted{})
	if !ok {
		return domainauth.OperationResult{Success: false, Message: messageStoreClosed}
	}

	res := s.gateway.Signup(ctx, email, password)
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = domainauth.MessageSignupFailed
		}
		if !s.finish(seq, domainauth.SignupFailed{Message: msg}) {
			return s.discarded()
		}
		return domainauth.OperationResult{Success: false, Message: res.Message, Errors: res.Errors}
	}

	if !s.finish(seq, domainauth.SignupSucceeded{Message: res.Message}) {
		return s.discarded()
	}
	return domainauth.OperationResult{Success: true, Message: res.Message}
}

// Logout deletes the persisted token and clears the session. It never fails;
// storage errors are logged and the state still transitions.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.WarnContext(ctx, "delete token failed", "error", err)
	}
	s.begin(domainauth.LoggedOut{})
}

// CheckAuthStatus restores the session from the persisted token.
// Only an explicit rejection deletes the token; a transport failure leaves it
// in place for a later retry.
func (s *SessionStore) CheckAuthStatus(ctx context.Context) {
	seq, ok := s.begin(domainauth.LoadingSet{Loading: true})
	if !ok {
		return
	}

	token, err := s.tokens.Read(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "read token failed", "error", err)
	}
	if token == "" {
		s.finish(seq, domainauth.UserSet{})
		return
	}

	res := s.gateway.VerifyToken(ctx)
	if res.Success && res.User == nil {
		res = domainauth.Result{Success: false, Message: domainauth.MessageInvalidToken}
	}
	switch {
	case res.Success:
		s.finish(seq, domainauth.UserSet{User: res.User})
	case res.Rejected():
		if !s.current(seq) {
			return
		}
		if err := s.tokens.Delete(ctx); err != nil {
			s.logger.WarnContext(ctx, "delete rejected token failed", "error", err)
		}
		s.finish(seq, domainauth.UserSet{})
	default:
		s.logger.WarnContext(ctx, "token verification unavailable", "message", res.Message)
		s.finish(seq, domainauth.UserSet{})
	}
}

// ClearError removes the current error message and nothing else.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	drain := s.applyLocked(domainauth.ErrorCleared{})
	s.mu.Unlock()
	if drain {
		s.drain()
	}
}

// begin starts a new attempt and applies its opening event.
func (s *SessionStore) begin(ev domainauth.Event) (uint64, bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, false
	}
	s.seq++
	seq := s.seq
	drain := s.applyLocked(ev)
	s.mu.Unlock()
	if drain {
		s.drain()
	}
	return seq, true
}

// finish applies the closing event of attempt seq unless it has been discarded.
func (s *SessionStore) finish(seq uint64, ev domainauth.Event) bool {
	s.mu.Lock()
	if !s.currentLocked(seq) {
		s.mu.Unlock()
		return false
	}
	drain := s.applyLocked(ev)
	s.mu.Unlock()
	if drain {
		s.drain()
	}
	return true
}

func (s *SessionStore) current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(seq)
}

func (s *SessionStore) currentLocked(seq uint64) bool {
	if s.closed {
		return false
	}
	return !s.discardStale || seq == s.seq
}

func (s *SessionStore) discarded() domainauth.OperationResult {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return domainauth.OperationResult{Success: false, Message: messageStoreClosed}
	}
	return domainauth.OperationResult{Success: false, Message: messageSuperseded}
}

// applyLocked reduces ev into the state and queues it for delivery.
// It reports whether the caller must drain the queue.
func (s *SessionStore) applyLocked(ev domainauth.Event) bool {
	if s.closed {
		return false
	}
	s.state = domainauth.Reduce(s.state, ev)
	s.queue = append(s.queue, s.state)
	if s.delivering {
		return false
	}
	s.delivering = true
	return true
}

// drain delivers queued states until the queue is empty. A subscriber that
// triggers another transition enqueues it and the outer drain delivers it.
func (s *SessionStore) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.delivering = false
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		subs := make([]func(domainauth.Session), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
		s.mu.Unlock()

		for _, fn := range subs {
			fn(next.Clone())
		}
	}
}
