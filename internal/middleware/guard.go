package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghaggin/storefront/internal/config"
	"github.com/ghaggin/storefront/internal/template"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Decision is the outcome of a single route guard evaluation.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionAllow
	DecisionDeny
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	default:
		return "pending"
	}
}

type Guard struct {
	sessions   *SessionManager
	checker    *Checker
	signupPath string
	log        *zap.Logger
	metrics    *Metrics
}

type GuardParams struct {
	fx.In

	Sessions *SessionManager
	Checker  *Checker
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *Metrics
}

func NewGuard(p GuardParams) *Guard {
	return &Guard{
		sessions:   p.Sessions,
		checker:    p.Checker,
		signupPath: p.Config.Guard.SignupPath,
		log:        p.Log.Named("guard"),
		metrics:    p.Metrics,
	}
}

// Evaluate decides whether the session behind ctx may see a protected page.
// A stored principal allows without asking the backend. Otherwise the backend
// is asked; its answer is stored only while ctx is still live.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	if g.sessions.Email(ctx) != "" {
		return DecisionAllow
	}

	email, err := g.checker.Check(ctx)
	switch {
	case err == nil && ctx.Err() == nil:
		if err := g.sessions.SetEmail(ctx, email); err != nil {
			g.log.Warn("error storing user", zap.Error(err))
			return DecisionDeny
		}
		return DecisionAllow
	case errors.Is(err, ErrCheckTimeout), ctx.Err() != nil:
		return DecisionPending
	default:
		g.log.Info("authentication check failed", zap.Error(err))
		return DecisionDeny
	}
}

// RequireAuth serves next only to authenticated sessions and redirects the
// rest to the signup page.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Evaluate(r.Context())
		g.metrics.decisions.WithLabelValues(d.String()).Inc()

		switch d {
		case DecisionAllow:
			next.ServeHTTP(w, r)
		case DecisionDeny:
			http.Redirect(w, r, g.signupPath, http.StatusSeeOther)
		default:
			if r.Context().Err() != nil {
				return
			}
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusServiceUnavailable)
			err := template.Render(w, r, "loading.html", &template.Data{
				PageTitle: "loading",
			})
			if err != nil {
				g.log.Error("error rendering loading page", zap.Error(err))
			}
		}
	})
}
