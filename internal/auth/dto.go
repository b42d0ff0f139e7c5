package auth

import (
	"github.com/trovekart/storefront-backend/internal/users"
)

// PhoneLoginRequest carries the OTP verification payload.
type PhoneLoginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// AdminLoginRequest carries the back-office credentials.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest rotates an existing session.
type RefreshRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenPair is the issued credential pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is returned from both login flows.
type LoginResponse struct {
	TokenPair
	User users.View `json:"user"`
}
