package auth

import "pixelvault/internal/domain/models"

// TokenVerifier defines the interface for access token verification.
// The core never parses credentials itself; it only consumes the owner
// identity a verified token yields.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
