// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ammerola/picking-be/internal/pkg/logger"
)

// AnonymousEmail identifies the acting user when authentication is disabled
const AnonymousEmail = "anonymous@local"

// UserEmailHeader names the acting user when authentication is disabled
const UserEmailHeader = "X-User-Email"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the acting user's email
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier issues and validates HS256 tokens
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier; an empty issuer is not checked
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for email valid for ttl
func (v *TokenVerifier) Issue(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    v.issuer,
			Subject:   email,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Auth identifies the acting user. With verification disabled (nil
// verifier) the user comes from X-User-Email, defaulting to AnonymousEmail.
func Auth(verifier *TokenVerifier, slogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				email := strings.TrimSpace(r.Header.Get(UserEmailHeader))
				if email == "" {
					email = AnonymousEmail
				}
				next.ServeHTTP(w, r.WithContext(WithUserEmail(r.Context(), email)))
				return
			}

			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				slogger.WarnContext(r.Context(), "rejected token",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()))
				unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserEmail(r.Context(), claims.Email)))
		})
	}
}

// WithUserEmail stores the acting user on ctx
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, logger.ContextKeyUserEmail, email)
}

// UserEmail returns the acting user, AnonymousEmail when none was set
func UserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(logger.ContextKeyUserEmail).(string); ok && email != "" {
		return email
	}
	return AnonymousEmail
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="picking"`)
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
