package controller

import (
	"context"

	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/internal/service"
	"github.com/sefazor/ourphotos-accounts/pkg/account"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func (c *AuthController) Signup(req account.SignupRequest) (*models.ProfileData, error) {
	user, err := c.authService.Signup(req)
	if err != nil {
		return nil, err
	}
	profile := models.NewProfileData(user)
	return &profile, nil
}

func (c *AuthController) Login(req account.LoginRequest) (*models.TokenData, error) {
	return c.authService.Login(req)
}

func (c *AuthController) ForgotPassword(ctx context.Context, req account.PasswordResetRequest, clientIP string) error {
	return c.authService.RequestPasswordReset(ctx, req.Email, clientIP)
}

func (c *AuthController) CheckResetCode(ctx context.Context, req account.CheckResetCodeRequest, clientIP string) error {
	return c.authService.CheckResetCode(ctx, req.Code, clientIP)
}

func (c *AuthController) ResetPassword(ctx context.Context, req account.ResetPasswordRequest, clientIP string) error {
	return c.authService.ResetPassword(ctx, req, clientIP)
}
