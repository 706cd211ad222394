package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/models"
	"github.com/sefazor/ourphotos-accounts/internal/repository"
	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/bcrypt"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
	"github.com/sefazor/ourphotos-accounts/pkg/ratelimit"
	"github.com/sefazor/ourphotos-accounts/pkg/utils"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

const (
	// DefaultResetCodeTTL matches the "within the next 10 minutes" promise of the mail.
	DefaultResetCodeTTL = 10 * time.Minute
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrCodeExpired        = errors.New("code expired")
	ErrWeakPassword       = errors.New("use 8+ characters with at least 1 digit, 1 uppercase and 1 lowercase")
	ErrTooManyRequests    = errors.New("too many reset requests, please try again later")
	ErrTooManyAttempts    = errors.New("too many attempts, please try again later")
)

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
}

type ResetCodeStore interface {
	Replace(code *models.PasswordResetCode) error
	FindUnused(email, codeHash string) (*models.PasswordResetCode, error)
	// Redeem consumes the unused code id and sets the user's password
	// atomically. It returns repository.ErrNotFound when the code is gone.
	Redeem(id, userID uint, hashedPassword string, at time.Time) error
}

type Mailer interface {
	SendWelcomeEmail(email, name string) error
	SendPasswordResetCode(email, code string, ttl time.Duration) error
}

type TokenIssuer interface {
	GenerateToken(email string, userID uint) (string, time.Time, error)
}

// ResetLimiter throttles code requests and code guesses per email and per
// client IP.
type ResetLimiter interface {
	CheckRequest(ctx context.Context, email, ip string) error
	CheckConfirm(ctx context.Context, email, ip string) error
	Clear(ctx context.Context, email string) error
}

type AuthServiceConfig struct {
	ResetCodeTTL time.Duration
	HashCost     int
}

type AuthService struct {
	users   UserStore
	codes   ResetCodeStore
	mailer  Mailer
	tokens  TokenIssuer
	limiter ResetLimiter
	cfg     AuthServiceConfig
	log     *zap.Logger
	now     func() time.Time
}

// NewAuthService wires the account operations. limiter may be nil.
func NewAuthService(
	users UserStore,
	codes ResetCodeStore,
	mailer Mailer,
	tokens TokenIssuer,
	limiter ResetLimiter,
	cfg AuthServiceConfig,
	log *zap.Logger,
) *AuthService {
	if cfg.ResetCodeTTL <= 0 {
		cfg.ResetCodeTTL = DefaultResetCodeTTL
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:   users,
		codes:   codes,
		mailer:  mailer,
		tokens:  tokens,
		limiter: limiter,
		cfg:     cfg,
		log:     logger.OrNop(log).Named("auth"),
		now:     time.Now,
	}
}

func (s *AuthService) Signup(req account.SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.HashPasswordCost(req.Password, s.cfg.HashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID))

	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.log.Warn("welcome email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}()

	return user, nil
}

func (s *AuthService) Login(req account.LoginRequest) (*models.TokenData, error) {
	user, err := s.users.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		s.log.Debug("login failed", zap.Uint("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenData{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}

// RequestPasswordReset mails a fresh code. Unknown emails and mail failures
// both succeed silently so the endpoint does not reveal which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, ip string) error {
	email = normalizeEmail(email)

	if err := s.throttle(ctx, email, ip, s.checkRequest, ErrTooManyRequests); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debug("reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := utils.GenerateNumericCode(validation.ResetCodeLength)
	if err != nil {
		return err
	}

	record := &models.PasswordResetCode{
		UserID:    user.ID,
		Email:     user.Email,
		CodeHash:  utils.HashCode(code),
		ExpiresAt: s.now().Add(s.cfg.ResetCodeTTL),
	}
	if err := s.codes.Replace(record); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	if err := s.mailer.SendPasswordResetCode(user.Email, code, s.cfg.ResetCodeTTL); err != nil {
		s.log.Error("reset code email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil
	}

	s.log.Info("reset code issued", zap.Uint("user_id", user.ID))
	return nil
}

// CheckResetCode confirms that code belongs to a pending reset. Guesses are
// throttled per client IP.
func (s *AuthService) CheckResetCode(ctx context.Context, code, ip string) error {
	if err := s.throttle(ctx, "", ip, s.checkConfirm, ErrTooManyAttempts); err != nil {
		return err
	}
	_, err := s.pendingCode("", code)
	return err
}

func (s *AuthService) ResetPassword(ctx context.Context, req account.ResetPasswordRequest, ip string) error {
	email := normalizeEmail(req.Email)
	if err := s.throttle(ctx, email, ip, s.checkConfirm, ErrTooManyAttempts); err != nil {
		return err
	}

	record, err := s.pendingCode(email, req.Code)
	if err != nil {
		return err
	}
	if !validation.IsValidPassword(req.Password) {
		return ErrWeakPassword
	}

	user, err := s.users.GetByID(record.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	hashedPassword, err := bcrypt.HashPasswordCost(req.Password, s.cfg.HashCost)
	if err != nil {
		return err
	}
	if err := s.codes.Redeem(record.ID, user.ID, hashedPassword, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if s.limiter != nil {
		if err := s.limiter.Clear(ctx, email); err != nil {
			s.log.Warn("clearing reset throttle failed", zap.Error(err))
		}
	}

	s.log.Info("password reset", zap.Uint("user_id", user.ID))
	return nil
}

func (s *AuthService) checkRequest(ctx context.Context, email, ip string) error {
	return s.limiter.CheckRequest(ctx, email, ip)
}

func (s *AuthService) checkConfirm(ctx context.Context, email, ip string) error {
	return s.limiter.CheckConfirm(ctx, email, ip)
}

// throttle runs check when a limiter is configured and maps a spent budget
// to limited. Limiter outages fail open.
func (s *AuthService) throttle(ctx context.Context, email, ip string, check func(context.Context, string, string) error, limited error) error {
	if s.limiter == nil {
		return nil
	}
	if err := check(ctx, email, ip); err != nil {
		if errors.Is(err, ratelimit.ErrRateLimited) {
			s.log.Info("reset throttled", zap.String("ip", ip), zap.Error(limited))
			return limited
		}
		s.log.Warn("reset limiter unavailable", zap.Error(err))
	}
	return nil
}

func (s *AuthService) pendingCode(email, code string) (*models.PasswordResetCode, error) {
	if !validation.IsValidResetCode(code) {
		return nil, ErrInvalidCode
	}
	record, err := s.codes.FindUnused(email, utils.HashCode(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if record.Expired(s.now()) {
		return nil, ErrCodeExpired
	}
	return record, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
