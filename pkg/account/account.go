// Package account describes the Account Service contract shared by the HTTP
// client, the client-side flows and the reference server.
package account

import (
	"context"
	"fmt"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password_strength"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckResetCodeRequest struct {
	Code string `json:"code" validate:"reset_code"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"reset_code"`
	Password string `json:"password" validate:"password_strength"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Service is the set of remote operations the flows depend on.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) error
	RequestPasswordReset(ctx context.Context, req PasswordResetRequest) error
	CheckResetPasswordCode(ctx context.Context, req CheckResetCodeRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

// RejectedError is returned when the service completed the request but
// declined it. Message is display text supplied by the service.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("account service rejected request (status %d)", e.Status)
	}
	return fmt.Sprintf("account service rejected request (status %d): %s", e.Status, e.Message)
}
