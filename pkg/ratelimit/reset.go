package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type ResetConfig struct {
	RequestMax    int
	RequestWindow time.Duration
	ConfirmMax    int
	ConfirmWindow time.Duration
}

// ResetLimiter throttles the password reset endpoints: code requests per email
// and per IP, code guesses per email and per IP.
type ResetLimiter struct {
	request *Limiter
	confirm *Limiter
}

func NewResetLimiter(client redis.UniversalClient, cfg ResetConfig) *ResetLimiter {
	return &ResetLimiter{
		request: New(client, "reset", cfg.RequestMax, cfg.RequestWindow),
		confirm: New(client, "reset-confirm", cfg.ConfirmMax, cfg.ConfirmWindow),
	}
}

func (l *ResetLimiter) CheckRequest(ctx context.Context, email, ip string) error {
	return allowAll(ctx, l.request, email, ip)
}

// CheckConfirm counts one code guess. email may be empty when the caller
// does not know it yet.
func (l *ResetLimiter) CheckConfirm(ctx context.Context, email, ip string) error {
	return allowAll(ctx, l.confirm, email, ip)
}

// Clear drops the email counters after a completed reset.
func (l *ResetLimiter) Clear(ctx context.Context, email string) error {
	return errors.Join(
		l.request.Reset(ctx, emailKey(email)),
		l.confirm.Reset(ctx, emailKey(email)),
	)
}

func allowAll(ctx context.Context, l *Limiter, email, ip string) error {
	if email != "" {
		if err := l.Allow(ctx, emailKey(email)); err != nil {
			return err
		}
	}
	if ip != "" {
		if err := l.Allow(ctx, "ip:"+ip); err != nil {
			return err
		}
	}
	return nil
}

func emailKey(email string) string {
	return "email:" + email
}
