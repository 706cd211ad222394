package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/controller"
	"github.com/sefazor/ourphotos-accounts/internal/middleware"
	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
)

type UserHandler struct {
	userController *controller.UserController
	log            *zap.Logger
}

func NewUserHandler(userController *controller.UserController, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userController: userController,
		log:            logger.OrNop(log),
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	profile, err := h.userController.GetProfile(userID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(profile, ""))
}
