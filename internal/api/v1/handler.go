package v1

import (
	"errors"

	"github.com/Behyna/banking-portal/internal/api/contract"
	"github.com/Behyna/banking-portal/internal/api/validator"
	"github.com/Behyna/banking-portal/internal/balance"
	"github.com/Behyna/banking-portal/internal/constants"
	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/internal/transaction"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger     *zap.Logger
	managers   transaction.Managers
	inquiry    *balance.Inquiry
	XValidator validator.IXValidator
	services   endpoint.Config
}

// NewHandler wires the portal forms to the lifecycle managers. services is
// what /config.json serves.
func NewHandler(logger *zap.Logger, managers transaction.Managers, inquiry *balance.Inquiry,
	XValidator validator.IXValidator, services endpoint.Config) *Handler {
	return &Handler{
		logger:     logger,
		managers:   managers,
		inquiry:    inquiry,
		XValidator: XValidator,
		services:   services,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) ConfigDocument(c *fiber.Ctx) error {
	return c.JSON(h.services)
}

func (h *Handler) QueryBalance(c *fiber.Ctx) error {
	var request BalanceRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid balance request", zap.String("message", responseError.Message))
		return c.JSON(responseError)
	}

	state, err := h.inquiry.Query(c.UserContext(), request.AccountID)
	if err != nil {
		return endpointError(err)
	}

	return c.JSON(state)
}

func (h *Handler) Balance(c *fiber.Ctx) error {
	return c.JSON(h.inquiry.State())
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	var request DepositRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid deposit request", zap.String("message", responseError.Message))
		return c.JSON(responseError)
	}

	return h.submit(c, transaction.Deposit{AccountID: request.AccountID, Amount: request.Amount})
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var request WithdrawalRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid withdrawal request", zap.String("message", responseError.Message))
		return c.JSON(responseError)
	}

	return h.submit(c, transaction.Withdrawal{AccountID: request.AccountID, Amount: request.Amount})
}

func (h *Handler) Transfer(c *fiber.Ctx) error {
	var request TransferRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid transfer request", zap.String("message", responseError.Message))
		return c.JSON(responseError)
	}

	return h.submit(c, transaction.Transfer{
		FromAccountID: request.FromAccountID,
		ToAccountID:   request.ToAccountID,
		Amount:        request.Amount,
	})
}

// State returns the current lifecycle state of kind's manager.
func (h *Handler) State(kind transaction.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(h.managers.For(kind).State())
	}
}

// Reset returns kind's manager to idle, as when the form is dismissed.
func (h *Handler) Reset(kind transaction.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(h.managers.For(kind).Reset())
	}
}

func (h *Handler) submit(c *fiber.Ctx, request transaction.Request) error {
	state, err := h.managers.For(request.Kind()).Submit(c.UserContext(), request)
	if err != nil {
		return endpointError(err)
	}

	return c.JSON(state)
}

func endpointError(err error) error {
	var configErr *endpoint.ConfigError
	if errors.As(err, &configErr) {
		return contract.NewError(constants.ErrCodeEndpointUnavailable, err)
	}
	return err
}
