package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/httpx"
)

type contextKey int

const (
	principalKey contextKey = iota
	claimsKey
)

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// ClaimsFromContext returns the validated token claims, if any.
func ClaimsFromContext(ctx context.Context) (*jwt.StandardClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwt.StandardClaims)
	return c, ok
}

// ContextWithPrincipal is used by handler tests to inject a caller.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Middleware validates the bearer token and loads the caller into the
// request context. A missing header is rejected with 403, a bad token
// with 401.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.Error(w, apperr.E(apperr.Forbidden, "missing authorization header"))
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				httpx.Error(w, apperr.E(apperr.Unauthenticated, "malformed authorization header"))
				return
			}

			p, claims, err := service.Authenticate(r.Context(), token)
			if err != nil {
				httpx.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
