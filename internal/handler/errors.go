package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/internal/service"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgInternal       = "internal server error"
	msgCodeExpired    = "Code expired"
	msgInvalidInput   = "Invalid input."
	msgName           = "Please enter your name."
	msgEmail          = "Please enter your email."
	msgPasswordPolicy = "Use 8+ characters with at least 1 digit, 1 uppercase and 1 lowercase."
	msgPasswordNeeded = "Please enter your password."
	msgCode           = "invalid or expired code"
)

// statusFor maps service errors to the status and display text of the
// response. Unknown errors are 500 and never expose their text.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrCodeExpired):
		return fiber.StatusBadRequest, msgCodeExpired
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrWeakPassword):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrTooManyRequests),
		errors.Is(err, service.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests, err.Error()
	case errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound, err.Error()
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}

func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status, message := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("request_id", c.Get(fiber.HeaderXRequestID)),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(models.ErrorResponse(message))
}

// validationMessage reports the first failing field the way the client
// flows word their field alerts.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgInvalidInput
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return msgName
	case "Email":
		return msgEmail
	case "Password":
		if fe.Tag() == "required" {
			return msgPasswordNeeded
		}
		return msgPasswordPolicy
	case "Code":
		return msgCode
	default:
		return msgInvalidInput
	}
}
