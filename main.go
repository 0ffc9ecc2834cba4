package main

import (
	"os"

	"github.com/ghaggin/storefront/internal/api"
	"github.com/ghaggin/storefront/internal/config"
	"github.com/ghaggin/storefront/internal/middleware"
	"github.com/ghaggin/storefront/internal/storefront"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Server rendered storefront in front of the shop backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/config.yaml", "path to the yaml config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront http server",
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(appOptions(config.Path(configPath)))
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	root.AddCommand(serve)

	return root
}

func appOptions(path config.Path) fx.Option {
	return fx.Options(
		fx.Supply(path),
		fx.Provide(
			config.New,
			newLogger,
			newRegistry,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		api.Module,
		middleware.Module,
		storefront.Module,
	)
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	if c.Log.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
