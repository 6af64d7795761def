package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Principal is the authenticated caller, rebuilt from the account
// store on every request so permission edits take effect immediately.
type Principal struct {
	ID          uuid.UUID
	Username    string
	Role        string
	Permissions map[string]bool
}

// Credentials is the login response payload.
type Credentials struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Service defines authentication business logic.
type Service interface {
	// Login verifies the password and issues a signed bearer token.
	Login(ctx context.Context, username, password string) (*Credentials, error)

	// Authenticate validates a token end to end: signature, expiry,
	// revocation, and the current state of the account behind it.
	Authenticate(ctx context.Context, token string) (*Principal, *jwt.StandardClaims, error)

	// Logout revokes the token for its remaining lifetime.
	Logout(ctx context.Context, claims *jwt.StandardClaims) error
}

// RevocationList records tokens that were logged out before expiry.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
