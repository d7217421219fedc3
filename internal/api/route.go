package api

import (
	v1 "github.com/Behyna/banking-portal/internal/api/v1"
	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/internal/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, handler *v1.Handler, gatherer prometheus.Gatherer) {
	app.Get("/ping", handler.Pong)
	app.Get(endpoint.DocumentPath, handler.ConfigDocument)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Post(prefixV1+"/balance", handler.QueryBalance)
	app.Get(prefixV1+"/balance", handler.Balance)

	app.Post(prefixV1+transaction.KindDeposit.Path(), handler.Deposit)
	app.Post(prefixV1+transaction.KindWithdrawal.Path(), handler.Withdraw)
	app.Post(prefixV1+transaction.KindTransfer.Path(), handler.Transfer)

	for _, kind := range []transaction.Kind{transaction.KindDeposit, transaction.KindWithdrawal, transaction.KindTransfer} {
		app.Get(prefixV1+kind.Path(), handler.State(kind))
		app.Delete(prefixV1+kind.Path(), handler.Reset(kind))
	}
}
