package auth

import (
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ScopeRead  = "read"
	ScopeWrite = "write"

	// HeaderAPIKey carries the static API key.
	HeaderAPIKey = "X-API-Key"

	localsScopes = "auth_scopes"
)

// Config holds the credentials accepted by the middleware.
type Config struct {
	// ApiKey grants every scope. Empty disables key auth.
	ApiKey string
	// JWTSecret verifies HS256 bearer tokens. Empty disables token auth.
	JWTSecret string
}

// Claims are the bearer token claims. Roles lists granted scopes.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// New authenticates every request with either the API key header or a
// bearer token and stores the granted scopes for RequireScope. With no
// credentials configured every request is granted every scope.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" && cfg.JWTSecret == "" {
			c.Locals(localsScopes, []string{ScopeRead, ScopeWrite})
			return c.Next()
		}

		if key := c.Get(HeaderAPIKey); key != "" && cfg.ApiKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) == 1 {
				c.Locals(localsScopes, []string{ScopeRead, ScopeWrite})
				return c.Next()
			}
			return unauthorized(c, "invalid api key")
		}

		h := c.Get(fiber.HeaderAuthorization)
		if cfg.JWTSecret == "" || len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
			return unauthorized(c, "missing credentials")
		}
		claims, err := Parse(cfg.JWTSecret, strings.TrimSpace(h[len("Bearer "):]))
		if err != nil {
			return unauthorized(c, "invalid token")
		}
		c.Locals(localsScopes, claims.Roles)
		return c.Next()
	}
}

// RequireScope rejects requests whose credentials lack scope.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scopes, _ := c.Locals(localsScopes).([]string)
		if !slices.Contains(scopes, scope) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("missing %s scope", scope),
			})
		}
		return c.Next()
	}
}

// Sign issues an HS256 token granting roles.
func Sign(secret, subject string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Parse verifies an HS256 token and returns its claims.
func Parse(secret, token string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
