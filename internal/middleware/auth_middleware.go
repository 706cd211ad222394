package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/models"
	jwtPkg "github.com/sefazor/ourphotos-accounts/pkg/jwt"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
)

const (
	LocalUserID    = "userID"
	LocalUserEmail = "userEmail"
)

// TokenValidator checks a login token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwtPkg.Claims, error)
}

func AuthMiddleware(tokens TokenValidator, log *zap.Logger) fiber.Handler {
	log = logger.OrNop(log)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Debug("token validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserEmail, claims.Email)

		return c.Next()
	}
}

// RequestID copies or assigns X-Request-ID so logs on both sides correlate.
func RequestID(newID func() string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = newID()
			c.Request().Header.Set(fiber.HeaderXRequestID, id)
		}
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}
