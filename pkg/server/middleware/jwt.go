package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doodlesbykumbi/acts/pkg/identity"
)

// JWTAuthenticator is middleware that validates HS256 bearer tokens
type JWTAuthenticator struct {
	Secret []byte
	// Required rejects requests without a token. When false, requests
	// without a token continue anonymously; a presented token must still
	// be valid.
	Required bool
}

// NewJWTAuthenticator creates a new JWT authenticator middleware
func NewJWTAuthenticator(secret []byte, required bool) *JWTAuthenticator {
	return &JWTAuthenticator{Secret: secret, Required: required}
}

// Middleware returns an HTTP middleware that validates JWT tokens
func (j *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			if j.Required {
				unauthorized(w, "Authorization missing")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			unauthorized(w, "Malformed authorization header")
			return
		}

		if len(j.Secret) == 0 {
			unauthorized(w, "Token authentication is not configured")
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return j.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				unauthorized(w, "Token expired")
			case errors.Is(err, jwt.ErrTokenMalformed):
				unauthorized(w, "Malformed authorization token")
			default:
				unauthorized(w, "Invalid signature")
			}
			return
		}

		if claims.Subject == "" {
			unauthorized(w, "Token subject missing")
			return
		}

		ident, ok := identity.Get(r.Context())
		if !ok {
			ident = identity.New("")
		}
		ident = ident.WithUser(claims.Subject, claimTime(claims.IssuedAt), claimTime(claims.ExpiresAt))

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), ident)))
	})
}

func claimTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(msg))
}
