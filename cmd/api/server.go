package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/config"
	"github.com/sefazor/ourphotos-accounts/internal/handler"
	"github.com/sefazor/ourphotos-accounts/internal/middleware"
	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/internal/service"
	"github.com/sefazor/ourphotos-accounts/pkg/email"
	"github.com/sefazor/ourphotos-accounts/pkg/jwt"
)

const confirmGuardMax = 10

func newMailer(cfg *config.Config, log *zap.Logger) *email.EmailService {
	return email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, log)
}

func newTokenManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, jwt.TokenExpiryLogin)
}

func newAuthServiceConfig(cfg *config.Config) service.AuthServiceConfig {
	return service.AuthServiceConfig{ResetCodeTTL: cfg.Reset.CodeTTL}
}

func newApp(cfg *config.Config, log *zap.Logger, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, tokens *jwt.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ourphotos-accounts",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(models.ErrorResponse(message))
		},
	})

	// Global middleware first
	app.Use(middleware.RequestID(uuid.NewString))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${respHeader:X-Request-ID} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("too many requests, please try again later"))
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(nil, "ok"))
	})

	api := app.Group("/api")

	// Code guesses share one per-IP budget across both confirm routes
	confirmGuard := limiter.New(limiter.Config{
		Max:        confirmGuardMax,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("too many attempts, please try again later"))
		},
	})
	api.Use(handler.PathCheckResetCode, confirmGuard)
	api.Use(handler.PathResetPassword, confirmGuard)

	handler.RegisterRoutes(api, authHandler, userHandler, middleware.AuthMiddleware(tokens, log))

	return app
}
