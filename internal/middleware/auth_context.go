package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-lost-found/internal/platform/textnorm"
	"pet-lost-found/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Headers de identidad en modo dev (sin verifier).
const (
	DebugPhoneHeader = "X-Debug-Phone"
	DebugNameHeader  = "X-Debug-Name"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: si viene X-Debug-Phone => setea claims.
// - Si no hay claims, el request sigue igual; los handlers deciden si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if phone := textnorm.NormalizePhone(r.Header.Get(DebugPhoneHeader)); phone != "" {
					claims := auth.Claims{
						Phone: phone,
						Name:  strings.TrimSpace(r.Header.Get(DebugNameHeader)),
					}
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// el handler decide 401
				next.ServeHTTP(w, r)
				return
			}
			claims.Phone = textnorm.NormalizePhone(claims.Phone)

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// Phone devuelve el teléfono autenticado o "".
func Phone(ctx context.Context) string {
	c, ok := GetClaims(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.Phone)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
