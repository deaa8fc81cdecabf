package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

const sessionIssuer = "mamboro-ai"

// TokenClaims are carried by the session token issued after Google login.
type TokenClaims struct {
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Locale string `json:"locale,omitempty"`
	jwt.RegisteredClaims
}

type identityContextKey struct{}

// SignJWT issues an HS256 session token for profile valid for ttl.
func SignJWT(secret string, profile domain.UserProfile, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is required")
	}
	now := time.Now()
	claims := TokenClaims{
		Email:  string(profile.Identity()),
		Name:   profile.Name,
		Locale: profile.Locale,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   string(profile.Identity()),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyJWT checks the signature and expiry of a session token.
func VerifyJWT(secret, token string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, errors.New("token has no email")
	}
	return &claims, nil
}

// Identity resolves the caller from an optional bearer session token. A
// request without Authorization continues as the anonymous identity; a
// present but invalid token is rejected with 401.
func Identity(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || secret == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization")
				return
			}
			claims, err := VerifyJWT(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			ctx := ContextWithIdentity(r.Context(), domain.NewIdentity(claims.Email))
			if claims.Locale != "" && r.Header.Get("X-Locale") == "" {
				ctx = context.WithValue(ctx, LocaleKey, normalizeLocale(claims.Locale))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the caller identity, or the anonymous identity.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if v, ok := ctx.Value(identityContextKey{}).(domain.Identity); ok {
		return v
	}
	return ""
}

func ContextWithIdentity(ctx context.Context, id domain.Identity) context.Context {
	if id.IsAnonymous() {
		return ctx
	}
	return context.WithValue(ctx, identityContextKey{}, id)
}
