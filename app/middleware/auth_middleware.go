// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/utils"
	"github.com/gofiber/fiber/v3"
)

// Locals keys set by the authentication middlewares
const (
	LocalAccountID   = "account_id"
	LocalAccountType = "account_type"
	LocalAdminID     = "admin_id"
	LocalTokenID     = "token_id"
	LocalTokenClaims = "token_claims"
	LocalRequestID   = "request_id"

	headerRequestID     = "X-Request-ID"
	headerAuthorization = "Authorization"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

func unauthorized(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}

// bearerToken extracts the token from the Authorization header or writes the 401 itself
func bearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get(headerAuthorization)
	if authHeader == "" {
		return "", unauthorized(c, "Authorization header is required", "MISSING_AUTHORIZATION_HEADER")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", unauthorized(c, "Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", unauthorized(c, "Access token is required", "MISSING_ACCESS_TOKEN")
	}
	return token, nil
}

func tokenFailure(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return unauthorized(c, "Access token has expired", "TOKEN_EXPIRED")
	case errors.Is(err, services.ErrTokenRevoked):
		return unauthorized(c, "Access token has been revoked", "TOKEN_REVOKED")
	case errors.Is(err, services.ErrTokenInvalid):
		return unauthorized(c, "Invalid access token", "TOKEN_INVALID")
	default:
		return unauthorized(c, "Token validation failed", "TOKEN_VALIDATION_FAILED")
	}
}

func validationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), utils.RequestTimeout)
}

// Authenticate validates account session tokens, rejecting revoked ones
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := bearerToken(c)
		if token == "" {
			return err
		}

		ctx, cancel := validationContext()
		defer cancel()

		claims, err := m.tokenService.ValidateSessionToken(ctx, token)
		if err != nil {
			return tokenFailure(c, err)
		}

		c.Locals(LocalAccountID, claims.AccountID)
		c.Locals(LocalAccountType, claims.AccountType)
		c.Locals(LocalTokenID, claims.TokenID)
		c.Locals(LocalTokenClaims, claims)
		if requestID := c.Get(headerRequestID); requestID != "" {
			c.Locals(LocalRequestID, requestID)
		}

		return c.Next()
	}
}

// AdminAuthenticate validates admin tokens and sets admin-specific context values
func (m *AuthMiddleware) AdminAuthenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := bearerToken(c)
		if token == "" {
			return err
		}

		ctx, cancel := validationContext()
		defer cancel()

		claims, err := m.tokenService.ValidateAdminToken(ctx, token)
		if err != nil {
			return tokenFailure(c, err)
		}

		c.Locals(LocalAdminID, claims.AdminID)
		c.Locals(LocalTokenID, claims.TokenID)
		if requestID := c.Get(headerRequestID); requestID != "" {
			c.Locals(LocalRequestID, requestID)
		}

		return c.Next()
	}
}

// RequireAccountType must run after Authenticate; it rejects sessions of any other account type
func RequireAccountType(accountType string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if t, ok := c.Locals(LocalAccountType).(string); !ok || t != accountType {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "This endpoint is only available to " + accountType + " accounts",
				Error:   dto.ErrorDetail{Code: "ACCOUNT_TYPE_FORBIDDEN"},
			})
		}
		return c.Next()
	}
}

func GetAccountIDFromContext(c fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalAccountID).(uint)
	return id, ok
}

func GetAdminIDFromContext(c fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalAdminID).(uint)
	return id, ok
}

func GetSessionClaimsFromContext(c fiber.Ctx) (*services.SessionClaims, bool) {
	claims, ok := c.Locals(LocalTokenClaims).(*services.SessionClaims)
	return claims, ok
}
