package middleware

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Bootstrapper seeds a browser session with the backend's view of who is
// logged in, once, before any page of that session renders.
type Bootstrapper struct {
	checker  *Checker
	sessions *SessionManager
	log      *zap.Logger
	metrics  *Metrics
}

type BootstrapParams struct {
	fx.In

	Checker  *Checker
	Sessions *SessionManager
	Log      *zap.Logger
	Metrics  *Metrics
}

func NewBootstrapper(p BootstrapParams) *Bootstrapper {
	return &Bootstrapper{
		checker:  p.Checker,
		sessions: p.Sessions,
		log:      p.Log.Named("bootstrap"),
		metrics:  p.Metrics,
	}
}

// Run queries the backend once. It stores the principal and returns true on
// success; on any failure the session is left untouched and it returns false.
func (b *Bootstrapper) Run(ctx context.Context) (ok bool) {
	defer func() {
		outcome := "anonymous"
		if ok {
			outcome = "authenticated"
		}
		b.metrics.bootstrap.WithLabelValues(outcome).Inc()
	}()

	email, err := b.checker.Check(ctx)
	if err != nil {
		b.log.Warn("error loading user", zap.Error(err))
		return false
	}

	if err := b.sessions.SetEmail(ctx, email); err != nil {
		b.log.Warn("error storing user", zap.Error(err))
		return false
	}
	return true
}

// Wrap holds back the first request of a session until Run has completed.
// The attempt is never repeated for that session, whatever its outcome.
func (b *Bootstrapper) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if !b.sessions.Bootstrapped(ctx) {
			b.Run(ctx)
			if ctx.Err() != nil {
				return
			}
			b.sessions.MarkBootstrapped(ctx)
		}

		next.ServeHTTP(w, r)
	})
}
