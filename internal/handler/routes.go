package handler

import "github.com/gofiber/fiber/v2"

const (
	PathSignup         = "/auth/signup"
	PathLogin          = "/auth/login"
	PathForgotPassword = "/auth/forgot-password"
	PathCheckResetCode = "/auth/check-reset-code"
	PathResetPassword  = "/auth/reset-password"
	PathProfile        = "/user/profile"
)

// RegisterRoutes mounts the account routes on api. requireAuth guards the
// routes that need a login token.
func RegisterRoutes(api fiber.Router, auth *AuthHandler, user *UserHandler, requireAuth fiber.Handler) {
	// Public routes
	api.Post(PathSignup, auth.Signup)
	api.Post(PathLogin, auth.Login)
	api.Post(PathForgotPassword, auth.ForgotPassword)
	api.Post(PathCheckResetCode, auth.CheckResetCode)
	api.Post(PathResetPassword, auth.ResetPassword)

	// Protected routes
	api.Get(PathProfile, requireAuth, user.GetMyProfile)
}
