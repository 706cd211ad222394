// Package accountclient implements account.Service over the Account Service
// REST API.
package accountclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
)

const (
	PathSignup         = "/auth/signup"
	PathForgotPassword = "/auth/forgot-password"
	PathCheckResetCode = "/auth/check-reset-code"
	PathResetPassword  = "/auth/reset-password"
	PathLogin          = "/auth/login"

	HeaderRequestID = "X-Request-ID"

	DefaultTimeout = 15 * time.Second
)

// envelope mirrors the server response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	baseURL string
	timeout time.Duration
	log     *zap.Logger
}

var _ account.Service = (*Client)(nil)

// New returns a client for baseURL (e.g. http://localhost:8080/api). A
// non-positive timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     logger.OrNop(log).Named("accountclient"),
	}
}

func (c *Client) Signup(ctx context.Context, req account.SignupRequest) error {
	return c.post(ctx, PathSignup, req, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, req account.PasswordResetRequest) error {
	return c.post(ctx, PathForgotPassword, req, nil)
}

func (c *Client) CheckResetPasswordCode(ctx context.Context, req account.CheckResetCodeRequest) error {
	return c.post(ctx, PathCheckResetCode, req, nil)
}

func (c *Client) ResetPassword(ctx context.Context, req account.ResetPasswordRequest) error {
	return c.post(ctx, PathResetPassword, req, nil)
}

func (c *Client) Login(ctx context.Context, req account.LoginRequest) (*account.LoginResponse, error) {
	var resp account.LoginResponse
	if err := c.post(ctx, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends body as JSON and decodes the envelope. Non-2xx responses and
// envelopes with success=false become *account.RejectedError.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout, err := c.timeoutFor(ctx)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	log := c.log.With(zap.String("path", path), zap.String("request_id", requestID))

	agent := fiber.Post(c.baseURL + path)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Set(HeaderRequestID, requestID)
	agent.JSON(body)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("accountclient: prepare %s: %w", path, err)
	}

	start := time.Now()
	status, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Warn("request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return fmt.Errorf("accountclient: %s: %w", path, err)
	}
	log.Debug("response", zap.Int("status", status), zap.Duration("elapsed", time.Since(start)))

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if status >= fiber.StatusBadRequest || (decodeErr == nil && !env.Success) {
		return &account.RejectedError{Status: status, Message: env.Error}
	}
	if decodeErr != nil {
		return fmt.Errorf("accountclient: decode %s response: %w", path, decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("accountclient: decode %s data: %w", path, err)
		}
	}
	return nil
}

// timeoutFor caps the client timeout by the context deadline.
func (c *Client) timeoutFor(ctx context.Context) (time.Duration, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}
