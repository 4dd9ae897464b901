// Package session owns the login state of the single user of this client:
// interactive login, cached tokens and eager refresh.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/mail"
	"time"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/myhours"
)

// Store persists the cached session. Load returns (nil, nil) when nothing
// has been stored yet.
type Store interface {
	Load() (*model.Session, error)
	Save(model.Session) error
}

// Authenticator exchanges credentials or refresh tokens for token pairs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*myhours.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*myhours.TokenResponse, error)
}

// Prompter asks the user for login credentials.
type Prompter interface {
	Credentials(ctx context.Context) (email, password string, err error)
}

// Manager hands out a valid session, logging in or refreshing as needed.
// Every new token pair is saved before it is returned.
type Manager struct {
	store  Store
	auth   Authenticator
	prompt Prompter
	now    func() time.Time
	log    *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(store Store, auth Authenticator, prompt Prompter, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		auth:   auth,
		prompt: prompt,
		now:    time.Now,
		log:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureAuthenticated returns the cached session, refreshing it when the
// access token has expired, or runs the interactive login when nothing is
// cached. A failed refresh is returned as is; there is no fallback to login.
func (m *Manager) EnsureAuthenticated(ctx context.Context) (model.Session, error) {
	sess, err := m.store.Load()
	if err != nil {
		return model.Session{}, fmt.Errorf("could not open credential store for reading: %w", err)
	}
	if sess == nil {
		return m.Login(ctx)
	}
	if sess.Expired(m.now()) {
		return m.refresh(ctx, *sess)
	}
	return *sess, nil
}

// Login prompts for credentials and replaces any cached session.
func (m *Manager) Login(ctx context.Context) (model.Session, error) {
	email, password, err := m.prompt.Credentials(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: reading credentials: %w", model.ErrAuth, err)
	}
	if err := ValidateEmail(email); err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", model.ErrAuth, err)
	}

	issued := m.now()
	tok, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return model.Session{}, err
	}
	sess := model.Session{Email: email}
	apply(&sess, tok, issued)
	if err := m.store.Save(sess); err != nil {
		return model.Session{}, fmt.Errorf("saving session: %w", err)
	}
	m.log.Printf("session: stored new session for %s", email)
	return sess, nil
}

func (m *Manager) refresh(ctx context.Context, sess model.Session) (model.Session, error) {
	issued := m.now()
	tok, err := m.auth.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return model.Session{}, fmt.Errorf("refreshing session for %s: %w", sess.Email, err)
	}
	apply(&sess, tok, issued)
	if err := m.store.Save(sess); err != nil {
		return model.Session{}, fmt.Errorf("saving refreshed session: %w", err)
	}
	m.log.Printf("session: refreshed token, valid until %s", sess.Expiry().Format(time.RFC3339))
	return sess, nil
}

// apply copies a token response into sess. The expiry is measured from
// issued, the instant before the request was sent.
func apply(sess *model.Session, tok *myhours.TokenResponse, issued time.Time) {
	sess.AccessToken = tok.AccessToken
	sess.RefreshToken = tok.RefreshToken
	sess.ExpiresAt = issued.UnixMilli() + tok.ExpiresIn*1000
}

// ValidateEmail accepts a bare address such as "dev@example.com".
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q is not a valid email address", model.ErrValidation, email)
	}
	return nil
}
