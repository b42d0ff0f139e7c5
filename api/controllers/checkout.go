package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/api/responses"
	"github.com/trovekart/storefront-backend/api/validators"
	checkoutsvc "github.com/trovekart/storefront-backend/internal/checkout"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	AddressID *uuid.UUID `json:"address_id,omitempty"`
}

// Checkout converts the caller's cart into an order. The route sits behind
// the Idempotency-Key middleware.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Execute(r.Context(), userID, checkoutsvc.Input{AddressID: payload.AddressID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
