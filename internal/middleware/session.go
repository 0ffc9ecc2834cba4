package middleware

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/storefront/internal/config"
	"github.com/ghaggin/storefront/internal/model"
	"go.uber.org/fx"
)

const (
	sessionKey = "session_key"
	flashKey   = "flash"
)

var (
	errSessionNotFound = errors.New("session not found")
)

// SessionManager is the session store of a browser session: who is logged
// in and whether the session has been bootstrapped. It must only be used
// on contexts that went through Wrap.
type SessionManager struct {
	impl *scs.SessionManager
}

type SessionParams struct {
	fx.In

	Config *config.Config
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	gob.Register(&model.Session{})

	sm := &SessionManager{}
	sm.impl = scs.New()
	sm.impl.Lifetime = p.Config.Session.Lifetime
	sm.impl.Cookie.Name = p.Config.Session.CookieName
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context) (*model.Session, error) {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		return nil, errSessionNotFound
	}

	return session, nil
}

// Email returns the logged in principal, or "" when unauthenticated.
func (s *SessionManager) Email(ctx context.Context) string {
	session, err := s.Get(ctx)
	if err != nil {
		return ""
	}
	return session.Email
}

// SetEmail replaces the logged in principal. A blank email empties the
// session.
func (s *SessionManager) SetEmail(ctx context.Context, email string) error {
	s.update(ctx, func(session *model.Session) {
		session.Email = strings.TrimSpace(email)
	})
	return nil
}

func (s *SessionManager) Bootstrapped(ctx context.Context) bool {
	session, err := s.Get(ctx)
	return err == nil && session.Bootstrapped
}

func (s *SessionManager) MarkBootstrapped(ctx context.Context) {
	s.update(ctx, func(session *model.Session) {
		session.Bootstrapped = true
		session.BootstrappedAt = time.Now()
	})
}

// RenewToken issues a new session token, keeping the data. Call it when the
// principal changes through a login.
func (s *SessionManager) RenewToken(ctx context.Context) error {
	return s.impl.RenewToken(ctx)
}

// Flash keeps msg for the next page rendered in this session.
func (s *SessionManager) Flash(ctx context.Context, msg string) {
	s.impl.Put(ctx, flashKey, msg)
}

func (s *SessionManager) PopFlash(ctx context.Context) string {
	return s.impl.PopString(ctx, flashKey)
}

// update stores a modified copy so scs sees the write.
func (s *SessionManager) update(ctx context.Context, fn func(*model.Session)) {
	session := model.Session{}
	if cur, err := s.Get(ctx); err == nil {
		session = *cur
	}
	fn(&session)
	s.impl.Put(ctx, sessionKey, &session)
}
