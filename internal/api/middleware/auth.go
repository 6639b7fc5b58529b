package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/api/handler"
	"github.com/interviewme/backend/internal/core/domain"
)

// UserResolver looks up the local user behind an identity-provider subject.
type UserResolver interface {
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}

// AuthConfig holds the key material for identity-provider session tokens.
// RS256 tokens are verified with PublicKey, HS256 tokens with Secret.
type AuthConfig struct {
	Secret    []byte
	PublicKey *rsa.PublicKey
	Issuer    string
}

// NewAuthConfig builds an AuthConfig from a shared secret and/or a PEM
// encoded RSA public key.
func NewAuthConfig(secret, publicKeyPEM, issuer string) (AuthConfig, error) {
	cfg := AuthConfig{Issuer: issuer}
	if secret != "" {
		cfg.Secret = []byte(secret)
	}
	if publicKeyPEM != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
		if err != nil {
			return AuthConfig{}, fmt.Errorf("parse auth public key: %w", err)
		}
		cfg.PublicKey = key
	}
	if cfg.Secret == nil && cfg.PublicKey == nil {
		return AuthConfig{}, errors.New("auth: no verification key configured")
	}
	return cfg, nil
}

func (cfg AuthConfig) methods() []string {
	var m []string
	if cfg.PublicKey != nil {
		m = append(m, jwt.SigningMethodRS256.Alg())
	}
	if cfg.Secret != nil {
		m = append(m, jwt.SigningMethodHS256.Alg())
	}
	return m
}

func (cfg AuthConfig) keyFunc(token *jwt.Token) (any, error) {
	switch token.Method.Alg() {
	case jwt.SigningMethodRS256.Alg():
		if cfg.PublicKey != nil {
			return cfg.PublicKey, nil
		}
	case jwt.SigningMethodHS256.Alg():
		if cfg.Secret != nil {
			return cfg.Secret, nil
		}
	}
	return nil, jwt.ErrTokenSignatureInvalid
}

// Auth validates the bearer token, resolves the local user from its subject
// and stores it in the context.
func Auth(cfg AuthConfig, users UserResolver) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(cfg.methods()),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - no token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - invalid authorization header")
			}

			claims := jwt.RegisteredClaims{}
			tkn, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), &claims, cfg.keyFunc)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - invalid token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - invalid token")
			}

			user, err := users.FindByExternalID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - user not found")
				}
				return fmt.Errorf("resolve user: %w", err)
			}

			c.Set(handler.UserContextKey, user)
			return next(c)
		}
	}
}
