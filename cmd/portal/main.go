package main

import (
	"context"
	"time"

	"github.com/Behyna/banking-portal/internal/api"
	"github.com/Behyna/banking-portal/internal/api/middleware"
	v1 "github.com/Behyna/banking-portal/internal/api/v1"
	"github.com/Behyna/banking-portal/internal/api/validator"
	"github.com/Behyna/banking-portal/internal/balance"
	"github.com/Behyna/banking-portal/internal/config"
	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/internal/logging"
	"github.com/Behyna/banking-portal/internal/metrics"
	"github.com/Behyna/banking-portal/internal/transaction"
	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"github.com/Behyna/banking-portal/pkg/httpclient"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "banking-portal"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newRegistry,
			metrics.NewMetrics,
			newHTTPClient,
			newResolver,
			newBankingClient,
			newManagers,
			newInquiry,
			newValidator,
			newHandler,
			newApp,
		),
		fx.Invoke(startServer, startCollector),
	).Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.Log)
}

func newRegistry() (prometheus.Registerer, prometheus.Gatherer) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	return registry, registry
}

func newHTTPClient(cfg *config.Config) httpclient.HTTPClient {
	return httpclient.NewHTTPClient(cfg.HTTP)
}

func newResolver(cfg *config.Config, client httpclient.HTTPClient, logger *zap.Logger, m *metrics.Metrics) (*endpoint.Resolver, error) {
	mode, err := endpoint.ParseMode(cfg.Portal.Mode)
	if err != nil {
		return nil, err
	}

	source, err := endpoint.NewSource(mode, cfg.Portal.EnvPrefix, cfg.Portal.Origin, client)
	if err != nil {
		return nil, err
	}

	return endpoint.NewResolver(source, logger, endpoint.WithRecorder(m)), nil
}

func newBankingClient(cfg *config.Config, resolver *endpoint.Resolver, client httpclient.HTTPClient) bankingapi.Client {
	return bankingapi.NewLazyClient(resolver.BankingServiceURL, bankingapi.Config{APIPrefix: cfg.Portal.APIPrefix}, client)
}

func newManagers(client bankingapi.Client, logger *zap.Logger, m *metrics.Metrics) transaction.Managers {
	return transaction.NewManagers(client, logger, m)
}

func newInquiry(client bankingapi.Client, logger *zap.Logger, m *metrics.Metrics) *balance.Inquiry {
	return balance.NewInquiry(client, logger, m)
}

func newValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

func newHandler(logger *zap.Logger, managers transaction.Managers, inquiry *balance.Inquiry,
	xValidator validator.IXValidator, cfg *config.Config) *v1.Handler {
	return v1.NewHandler(logger, managers, inquiry, xValidator, cfg.Services)
}

func newApp(logger *zap.Logger, m *metrics.Metrics, resolver *endpoint.Resolver) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})
	app.Use(metrics.HTTPMetricsMiddleware(m, logger, metrics.DefaultHTTPConfig()))
	app.Use(metrics.HealthCheckMiddleware(serviceName, resolver))
	return app
}

func startServer(app *fiber.App, handler *v1.Handler, gatherer prometheus.Gatherer, resolver *endpoint.Resolver,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, gatherer)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Warm the endpoint cache. A failure here is not fatal: every
			// submission retries resolution until it succeeds.
			go func() {
				if _, err := resolver.Resolve(context.Background()); err == nil {
					logger.Info("Banking service endpoint resolved", zap.String("phase", resolver.Phase().String()))
				}
			}()

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("Portal server stopped", zap.Error(err))
				}
			}()
			logger.Info("Portal server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			defer logger.Sync()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func startCollector(m *metrics.Metrics, logger *zap.Logger, resolver *endpoint.Resolver,
	managers transaction.Managers, lc fx.Lifecycle) {
	collector := metrics.NewCollector(m, logger, resolver,
		managers.Deposits, managers.Withdrawals, managers.Transfers)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(15 * time.Second)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return nil
		},
	})
}
