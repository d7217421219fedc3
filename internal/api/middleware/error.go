package middleware

import (
	"errors"

	"github.com/Behyna/banking-portal/internal/api/contract"
	"github.com/Behyna/banking-portal/internal/constants"
	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr contract.Error
		if errors.As(err, &apiErr) {
			return handleAPIError(c, apiErr)
		}

		var configErr *endpoint.ConfigError
		if errors.As(err, &configErr) {
			return handleAPIError(c, contract.Error{Code: constants.ErrCodeEndpointUnavailable, Cause: err})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(contract.ResponseError{
				Code:    codeForStatus(fiberErr.Code),
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleAPIError(c *fiber.Ctx, err contract.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && errorCode != constants.ErrCodeInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(contract.ResponseError{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
		Error:   err.Error(),
	})
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return constants.ErrCodeRouteNotFound
	case status >= fiber.StatusInternalServerError:
		return constants.ErrCodeInternalError
	default:
		return constants.ErrCodeInvalidRequestBody
	}
}
