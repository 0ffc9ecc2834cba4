package storefront

import (
	"context"
	"errors"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/ghaggin/storefront/internal/api"
	"github.com/ghaggin/storefront/internal/config"
	"github.com/ghaggin/storefront/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Storefront struct {
	log      *zap.Logger
	client   *api.Client
	sessions *middleware.SessionManager
	server   *http.Server
}

type Params struct {
	fx.In

	Log       *zap.Logger
	Config    *config.Config
	Client    *api.Client
	Sessions  *middleware.SessionManager
	Bootstrap *middleware.Bootstrapper
	Guard     *middleware.Guard
	Registry  *prometheus.Registry
}

func New(p Params) (*Storefront, error) {
	s := &Storefront{
		log:      p.Log,
		client:   p.Client,
		sessions: p.Sessions,
	}

	proxy, err := newAPIProxy(p.Config.API.BaseURL, p.Log)
	if err != nil {
		return nil, err
	}

	root := chi.NewRouter()
	root.Use(chimw.RealIP, chimw.Recoverer)
	root.NotFound(s.notFound)

	root.Handle("/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	root.Handle("/api/*", proxy)

	root.Group(func(r chi.Router) {
		r.Use(api.ForwardCredentials(p.Config.API.CredentialCookies))
		r.Use(p.Sessions.Wrap)
		r.Use(p.Bootstrap.Wrap)
		r.Use(gziphandler.GzipHandler)

		// Auth
		r.Group(func(r chi.Router) {
			r.Use(p.Guard.RequireAuth)
			r.Get("/product/{id}", s.product)
			r.Post("/product/{id}/cart", s.addToCart)
			r.Get("/cart", s.cart)
			r.Post("/cart/{id}/quantity", s.updateQuantity)
			r.Post("/cart/{id}/remove", s.removeFromCart)
			r.Get("/profile", s.profile)
			r.Get("/create-address", s.createAddressPage)
			r.Post("/create-address", s.createAddress)
			r.Get("/select-address", s.selectAddress)
			r.Get("/order-confirmation", s.orderConfirmation)
			r.Post("/order-confirmation", s.placeOrder)
			r.Get("/myorders", s.myOrders)
			r.Post("/myorders/{id}/cancel", s.cancelOrder)
			r.Get("/my-products", s.myProducts)
			r.Post("/my-products/{id}/delete", s.deleteProduct)
			r.Get("/create-product", s.createProductPage)
			r.Post("/create-product", s.createProduct)
			r.Get("/create-product/{id}", s.createProductPage)
			r.Post("/create-product/{id}", s.createProduct)
		})

		// No Auth
		r.Group(func(r chi.Router) {
			r.Get("/", s.home)
			r.Get("/login", s.loginPage)
			r.Post("/login", s.login)
			r.Get("/signup", s.signupPage)
			r.Post("/signup", s.signup)
		})
	})

	s.server = &http.Server{
		Addr:    p.Config.Addr(),
		Handler: root,
	}
	return s, nil
}

func (s *Storefront) Handler() http.Handler {
	return s.server.Handler
}

func RegisterHooks(lc fx.Lifecycle, s *Storefront) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Storefront) Start(_ context.Context) error {
	s.log.Info("running storefront", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error running server", zap.Error(err))
		}
	}()
	return nil
}
