package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/pkg/jwt"
)

// Locals keys for the authenticated session in Fiber.
const (
	LocalSessionID = "session_id"
	LocalUsername  = "username"
)

// SessionValidator checks that a session is still live (not revoked, not
// expired). Implemented by the auth use case.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID string) error
}

// AuthMiddleware validates the Bearer JWT, then checks the bound session
// against the store so revoked sessions stop working before token expiry.
func AuthMiddleware(jwtSecret string, sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		sessionID, username, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		if sessions != nil {
			if err := sessions.Validate(c.Context(), sessionID); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_REVOKED", Message: "session revoked or expired"})
			}
		}
		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// GetSessionID returns the session ID from the context (after auth middleware).
func GetSessionID(c *fiber.Ctx) string {
	v := c.Locals(LocalSessionID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUsername returns the operator name from the context (after auth middleware).
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
