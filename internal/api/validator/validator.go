package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Behyna/banking-portal/internal/api/contract"
	"github.com/Behyna/banking-portal/internal/constants"
	"github.com/Behyna/banking-portal/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	sep = " and "
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	// Validator parses the request body into data and validates it. A
	// non-empty Code in the result means the response status is already set.
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.ResponseError)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, metrics *metrics.Metrics) IXValidator {
	for key, function := range valid {
		validator.RegisterValidation(key, function)
	}
	validator.RegisterTagNameFunc(jsonFieldName)

	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.ResponseError) {
	if err := c.BodyParser(data); err != nil {
		c.Status(fiber.StatusBadRequest)
		return contract.ResponseError{
			Code:    constants.ErrCodeInvalidRequestBody,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
			Error:   err.Error(),
		}
	}

	errs := x.Validate(data)
	if len(errs) == 0 {
		return responseErr
	}

	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(message, err.FailedField))

		if x.metrics != nil {
			x.metrics.RecordValidationError(err.FailedField, err.Tag)
		}
	}
	c.Status(fiber.StatusUnprocessableEntity)

	return contract.ResponseError{
		Code:    constants.ErrCodeValidationFailed,
		Message: strings.Join(errMsgs, sep),
	}
}

// jsonFieldName reports fields under their wire names, e.g. accountId.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)
		}
	}
	return validationErrors
}
