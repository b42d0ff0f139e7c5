package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/api/responses"
	"github.com/trovekart/storefront-backend/api/validators"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/logger"
	"github.com/trovekart/storefront-backend/pkg/razorpay"
)

type paymentIntentRequest struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency"`
}

// PaymentIntent creates a gateway order for the client-side payment flow.
func PaymentIntent(client *razorpay.Client, defaultCurrency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "payment gateway unavailable"))
			return
		}
		if _, err := contextUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload paymentIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
		if err != nil || !amount.IsPositive() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a positive number"))
			return
		}
		currency := strings.ToUpper(strings.TrimSpace(payload.Currency))
		if currency == "" {
			currency = defaultCurrency
		}
		intentID, err := client.CreateIntent(r.Context(), amount, currency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"intent_id": intentID, "currency": currency})
	}
}
