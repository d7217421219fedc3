package validator

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behyna/banking-portal/internal/api/contract"
	"github.com/Behyna/banking-portal/internal/metrics"
)

type transferForm struct {
	From   string `json:"fromAccountId" validate:"filled"`
	To     string `json:"toAccountId" validate:"filled"`
	Amount string `json:"amount" validate:"filled,amount"`
}

func TestXValidator_Validate(t *testing.T) {
	x := NewXValidator(validator.New(), nil)

	tests := []struct {
		name   string
		form   transferForm
		failed map[string]string
	}{
		{
			name: "complete",
			form: transferForm{From: "acc123", To: "acc456", Amount: "100.50"},
		},
		{
			name: "integer amount",
			form: transferForm{From: "acc123", To: "acc456", Amount: "999999"},
		},
		{
			name:   "blank destination",
			form:   transferForm{From: "acc123", To: "   ", Amount: "1"},
			failed: map[string]string{"toAccountId": FilledTag},
		},
		{
			name:   "not a number",
			form:   transferForm{From: "acc123", To: "acc456", Amount: "12,5"},
			failed: map[string]string{"amount": AmountTag},
		},
		{
			name: "empty form",
			form: transferForm{},
			failed: map[string]string{
				"fromAccountId": FilledTag,
				"toAccountId":   FilledTag,
				"amount":        FilledTag,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := x.Validate(&tt.form)

			got := make(map[string]string, len(errs))
			for _, e := range errs {
				assert.True(t, e.Error)
				got[e.FailedField] = e.Tag
			}

			if len(tt.failed) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.failed, got)
		})
	}
}

func TestXValidator_Validator(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	x := NewXValidator(validator.New(), m)

	app := fiber.New()
	app.Post("/transfers", func(c *fiber.Ctx) error {
		var form transferForm
		if responseError := x.Validator(&form, "The '%s' field is missing or invalid", c); responseError.Code != "" {
			return c.JSON(responseError)
		}
		return c.JSON(form)
	})

	post := func(body string) (int, contract.ResponseError) {
		req := httptest.NewRequest("POST", "/transfers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var out contract.ResponseError
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	t.Run("valid body passes through", func(t *testing.T) {
		status, out := post(`{"fromAccountId":"a","toAccountId":"b","amount":"1.00"}`)
		assert.Equal(t, 200, status)
		assert.Empty(t, out.Code)
	})

	t.Run("invalid fields are joined and recorded", func(t *testing.T) {
		status, out := post(`{"fromAccountId":"","toAccountId":"b","amount":"-"}`)
		assert.Equal(t, 422, status)
		assert.Equal(t, "VALIDATION_FAILED", out.Code)
		assert.Equal(t, "The 'fromAccountId' field is missing or invalid and The 'amount' field is missing or invalid", out.Message)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrors.WithLabelValues("amount", AmountTag)))
	})

	t.Run("unparseable body", func(t *testing.T) {
		status, out := post(`not json`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "INVALID_REQUEST_BODY", out.Code)
	})
}
