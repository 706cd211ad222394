package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/controller"
	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

type AuthHandler struct {
	authController *controller.AuthController
	validator      *validation.Validator
	log            *zap.Logger
}

func NewAuthHandler(authController *controller.AuthController, v *validation.Validator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		validator:      v,
		log:            logger.OrNop(log),
	}
}

// bind parses and validates the body, writing the 400 response itself.
// ok is false when the handler must return early.
func (h *AuthHandler) bind(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(msgInvalidBody))
	}
	if err := h.validator.Struct(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(validationMessage(err)))
	}
	return true, nil
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req account.SignupRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	profile, err := h.authController.Signup(req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(profile, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req account.LoginRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	token, err := h.authController.Login(req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(token, "Login successful"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req account.PasswordResetRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	if err := h.authController.ForgotPassword(c.UserContext(), req, c.IP()); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(nil, "If an account exists for this email, a reset code has been sent"))
}

func (h *AuthHandler) CheckResetCode(c *fiber.Ctx) error {
	var req account.CheckResetCodeRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	if err := h.authController.CheckResetCode(c.UserContext(), req, c.IP()); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Code is valid"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req account.ResetPasswordRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	if err := h.authController.ResetPassword(c.UserContext(), req, c.IP()); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Password reset successful"))
}
