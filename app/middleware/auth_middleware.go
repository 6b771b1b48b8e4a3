// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	"github.com/JakubKrejcir/alza-cost-control/app/services"
	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware handles session token validation for protected endpoints
type AuthMiddleware struct {
	authFlow businessflow.AuthFlow
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authFlow businessflow.AuthFlow) *AuthMiddleware {
	return &AuthMiddleware{
		authFlow: authFlow,
	}
}

// Authenticate is the middleware function that validates session tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authorization header is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_AUTHORIZATION_HEADER",
				},
			})
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Error: dto.ErrorDetail{
					Code: "INVALID_AUTHORIZATION_FORMAT",
				},
			})
		}

		// Extract the token (remove "Bearer " prefix)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Access token is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_ACCESS_TOKEN",
				},
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := m.authFlow.Authenticate(ctx, token)
		if err != nil {
			var message string
			var errorCode string

			switch {
			case errors.Is(err, services.ErrTokenExpired):
				message = "Access token has expired"
				errorCode = "TOKEN_EXPIRED"
			case errors.Is(err, services.ErrTokenInvalid):
				message = "Invalid access token"
				errorCode = "TOKEN_INVALID"
			case businessflow.IsSessionNotFound(err):
				message = "Session not found"
				errorCode = "SESSION_NOT_FOUND"
			case businessflow.IsSessionExpired(err):
				message = "Session has expired"
				errorCode = "SESSION_EXPIRED"
			case businessflow.IsUserInactive(err):
				message = "Account is inactive"
				errorCode = "ACCOUNT_INACTIVE"
			default:
				message = "Token validation failed"
				errorCode = "TOKEN_VALIDATION_FAILED"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: errorCode,
				},
			})
		}

		// Store user information in context for downstream handlers
		c.Locals("user_id", user.ID)
		c.Locals("user", user)
		c.Locals("session_token", token)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		// Continue to the next handler
		return c.Next()
	}
}
