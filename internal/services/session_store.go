package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/you/shopfront/domain"
)

// SessionStore is the single source of truth for "who is logged in". It owns
// the bearer token lifecycle: load from the vault at startup, expiry checks,
// and a timer that logs out the moment the token expires.
//
// Invariant: claims are present iff a token is present and was unexpired at
// the last check. At most one expiry timer is live at a time.
type SessionStore struct {
	vault   domain.TokenVault
	decoder domain.TokenDecoder
	now     func() time.Time

	mu     sync.Mutex
	token  string
	claims *domain.Claims
	ready  bool
	timer  *time.Timer
}

// NewSessionStore creates an unresolved session store; call Initialize before
// serving traffic.
func NewSessionStore(vault domain.TokenVault, decoder domain.TokenDecoder) *SessionStore {
	return &SessionStore{
		vault:   vault,
		decoder: decoder,
		now:     time.Now,
	}
}

// Initialize reads the persisted token and resolves the session. A missing,
// undecodable, or expired token resolves to "no user"; stale tokens are
// removed from the vault. The store reports Ready() only after this returns.
func (s *SessionStore) Initialize(ctx context.Context) error {
	token, err := s.vault.Load(ctx)
	if err != nil {
		s.resolve("", nil)
		if err == domain.ErrTokenNotPersisted {
			return nil
		}
		return fmt.Errorf("session: load persisted token: %w", err)
	}

	claims, err := s.decoder.Decode(token)
	if err != nil || claims.ExpiredAt(s.now()) {
		s.resolve("", nil)
		if clearErr := s.vault.Clear(ctx); clearErr != nil {
			return fmt.Errorf("session: discard stale token: %w", clearErr)
		}
		return nil
	}

	s.resolve(token, claims)
	return nil
}

func (s *SessionStore) resolve(token string, claims *domain.Claims) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	s.ready = true
	if claims != nil {
		s.armTimerLocked(claims.ExpiresAt)
	}
}

// Login accepts a freshly issued bearer token. An undecodable or already
// expired token is rejected and the current session is left unchanged.
func (s *SessionStore) Login(ctx context.Context, token string) error {
	claims, err := s.decoder.Decode(token)
	if err != nil {
		return err
	}
	if claims.ExpiredAt(s.now()) {
		return domain.ErrTokenExpired
	}

	if err := s.vault.Store(ctx, token); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	s.ready = true
	s.armTimerLocked(claims.ExpiresAt)
	return nil
}

// Logout clears the session and the persisted token. Idempotent.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.claims = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if err := s.vault.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear persisted token: %w", err)
	}
	return nil
}

// Close stops the expiry timer without touching persisted state.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// armTimerLocked replaces the expiry timer. Caller must hold s.mu.
func (s *SessionStore) armTimerLocked(expiresAt time.Time) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(expiresAt.Sub(s.now()), func() {
		log.Printf("session: token expired, logging out")
		if err := s.Logout(context.Background()); err != nil {
			log.Printf("session: expiry logout: %v", err)
		}
	})
}

// Ready reports whether the initial load has resolved. Consumers must not
// make allow/deny decisions before this is true.
func (s *SessionStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Authenticated implements domain.SessionReader
func (s *SessionStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Verified reports whether the logged-in user confirmed their email
func (s *SessionStore) Verified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims != nil && s.claims.Verified
}

// Claims returns the decoded claims of the current session, if any
func (s *SessionStore) Claims() (*domain.Claims, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil {
		return nil, false
	}
	c := *s.claims
	return &c, true
}

// Token implements domain.TokenSource
func (s *SessionStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

var (
	_ domain.SessionReader = (*SessionStore)(nil)
	_ domain.SessionWriter = (*SessionStore)(nil)
)
