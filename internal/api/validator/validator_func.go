package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	AmountTag = "amount"
	FilledTag = "filled"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag: ValidateAmount,
	FilledTag: ValidateFilled,
}

// ValidateAmount accepts any string that parses as a decimal number. The
// value itself is forwarded untouched.
func ValidateAmount(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func ValidateFilled(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
