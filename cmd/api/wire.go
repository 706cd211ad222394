//go:build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/ourphotos-accounts/internal/config"
	"github.com/sefazor/ourphotos-accounts/internal/controller"
	"github.com/sefazor/ourphotos-accounts/internal/handler"
	"github.com/sefazor/ourphotos-accounts/internal/repository"
	"github.com/sefazor/ourphotos-accounts/internal/service"
	"github.com/sefazor/ourphotos-accounts/pkg/email"
	"github.com/sefazor/ourphotos-accounts/pkg/jwt"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

func initializeAPI(cfg *config.Config, db *gorm.DB, limiter service.ResetLimiter, log *zap.Logger) (*fiber.App, error) {
	wire.Build(
		// Repositories
		repository.NewUserRepository,
		repository.NewResetCodeRepository,
		wire.Bind(new(service.UserStore), new(*repository.UserRepository)),
		wire.Bind(new(service.ResetCodeStore), new(*repository.ResetCodeRepository)),

		// Infrastructure
		newMailer,
		newTokenManager,
		newAuthServiceConfig,
		wire.Bind(new(service.Mailer), new(*email.EmailService)),
		wire.Bind(new(service.TokenIssuer), new(*jwt.Manager)),

		// Services
		service.NewAuthService,
		service.NewUserService,

		// Controllers
		controller.NewAuthController,
		controller.NewUserController,

		// Handlers
		validation.NewValidator,
		handler.NewAuthHandler,
		handler.NewUserHandler,

		newApp,
	)
	return nil, nil
}
