package middleware

import (
	"github.com/ghaggin/storefront/internal/api"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		NewMetrics,
		NewSessionManager,
		NewChecker,
		NewBootstrapper,
		NewGuard,
		func(c *api.Client) Identifier { return c },
	),
)
