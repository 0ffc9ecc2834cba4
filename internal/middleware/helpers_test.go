package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ghaggin/storefront/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeIdentifier answers WhoAmI with email/err, optionally after release
// is closed.
type fakeIdentifier struct {
	email   string
	err     error
	delay   time.Duration
	release chan struct{}
	panics  bool

	calls atomic.Int32
}

func (f *fakeIdentifier) WhoAmI(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.panics {
		panic("boom")
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.email, f.err
}

type deps struct {
	sessions  *SessionManager
	checker   *Checker
	bootstrap *Bootstrapper
	guard     *Guard
	metrics   *Metrics
}

func newDeps(t *testing.T, id Identifier, timeout time.Duration) *deps {
	t.Helper()

	cfg := config.Default()
	cfg.Guard.CheckTimeout = timeout

	log := zap.NewNop()
	m := NewMetrics(prometheus.NewRegistry())

	sessions, err := NewSessionManager(SessionParams{Config: cfg})
	require.NoError(t, err)

	checker := NewChecker(CheckerParams{Identifier: id, Config: cfg, Log: log, Metrics: m})

	return &deps{
		sessions: sessions,
		checker:  checker,
		bootstrap: NewBootstrapper(BootstrapParams{
			Checker:  checker,
			Sessions: sessions,
			Log:      log,
			Metrics:  m,
		}),
		guard: NewGuard(GuardParams{
			Sessions: sessions,
			Checker:  checker,
			Config:   cfg,
			Log:      log,
			Metrics:  m,
		}),
		metrics: m,
	}
}

// sessionContext returns a context with a fresh, empty session loaded.
func (d *deps) sessionContext(t *testing.T) context.Context {
	t.Helper()
	ctx, err := d.sessions.impl.Load(context.Background(), "")
	require.NoError(t, err)
	return ctx
}

// serve runs req through h and returns the recorder.
func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
