package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ghaggin/storefront/internal/api"
	"github.com/ghaggin/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrCheckTimeout = errors.New("session check timed out")
)

// Identifier resolves the principal behind the credentials carried by ctx.
type Identifier interface {
	WhoAmI(ctx context.Context) (string, error)
}

// Checker runs "who am I" queries, sharing one in-flight query between all
// callers presenting the same credentials.
type Checker struct {
	id      Identifier
	timeout time.Duration
	log     *zap.Logger
	metrics *Metrics

	group singleflight.Group
}

type CheckerParams struct {
	fx.In

	Identifier Identifier
	Config     *config.Config
	Log        *zap.Logger
	Metrics    *Metrics
}

func NewChecker(p CheckerParams) *Checker {
	return &Checker{
		id:      p.Identifier,
		timeout: p.Config.Guard.CheckTimeout,
		log:     p.Log.Named("checker"),
		metrics: p.Metrics,
	}
}

// Check returns the principal for the credentials in ctx. The shared query
// is not cancelled when ctx is; a cancelled caller returns ctx.Err() and the
// result is left to the remaining callers. Exceeding the configured timeout
// returns ErrCheckTimeout.
func (c *Checker) Check(ctx context.Context) (string, error) {
	ch := c.group.DoChan(api.CredentialKey(ctx), func() (any, error) {
		return c.query(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Checker) query(ctx context.Context) (email string, err error) {
	// singleflight re-panics on a fresh goroutine, which nothing can recover.
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("session check panicked", zap.Any("panic", r))
			email, err = "", fmt.Errorf("session check panicked: %v", r)
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	email, err = c.id.WhoAmI(ctx)

	result := "ok"
	switch {
	case err == nil:
	case errors.Is(ctx.Err(), context.DeadlineExceeded), isTimeout(err):
		result = "timeout"
		err = ErrCheckTimeout
	default:
		result = "error"
	}
	c.metrics.checks.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		c.log.Debug("session check failed", zap.String("result", result), zap.Error(err))
		return "", err
	}
	return email, nil
}

// isTimeout reports whether err is a transport or deadline timeout rather
// than an answer from the backend.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
