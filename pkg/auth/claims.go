package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin marks tokens allowed to use the admin surface.
const RoleAdmin = "admin"

// Identity is the resolved shopper identity attached to a request. Tokens
// are minted by the external auth provider; this service only verifies them.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsAdmin reports whether the identity may use admin endpoints.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// AccessTokenClaims represents the typed JWT presented by clients.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the request-scoped identity value.
func (c *AccessTokenClaims) Identity() Identity {
	return Identity{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
	}
}
