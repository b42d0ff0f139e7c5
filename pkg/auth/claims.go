package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT. Phone
// is empty for admin accounts, which sign in by email.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	Phone  string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	Phone  string         `json:"phone,omitempty"`
	jwt.RegisteredClaims
}
