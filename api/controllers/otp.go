package controllers

import (
	"net/http"

	"github.com/trovekart/storefront-backend/api/middleware"
	"github.com/trovekart/storefront-backend/api/responses"
	"github.com/trovekart/storefront-backend/api/validators"
	authsvc "github.com/trovekart/storefront-backend/internal/auth"
	"github.com/trovekart/storefront-backend/internal/otp"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

type otpSendRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// OTPSend issues a login code to the phone number.
func OTPSend(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload otpSendRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Send(r.Context(), payload.Phone, middleware.ClientIP(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

type otpVerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

// OTPVerify checks the code and signs the customer in.
func OTPVerify(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload otpVerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resp, err := svc.PhoneLogin(r.Context(), authsvc.PhoneLoginRequest{
			Phone: payload.Phone,
			Code:  payload.Code,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
