package controller

import (
	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/internal/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

func (c *UserController) GetProfile(userID uint) (*models.ProfileData, error) {
	user, err := c.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	profile := models.NewProfileData(user)
	return &profile, nil
}
