package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims the auth provider issues. Only the
// subject is used by the core; it becomes the owner identity every record is
// scoped to.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// OwnerID returns the owner identity from the JWT subject claim.
func (c *AccessClaims) OwnerID() string {
	return c.Subject
}
