package flow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPassword
	FieldConfirmPassword
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPassword:
		return "password"
	case FieldConfirmPassword:
		return "confirmPassword"
	}
	return "unknown"
}

type SignUpForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Valid reports whether all four fields pass their predicates at once.
func (f SignUpForm) Valid() bool {
	return validation.IsValidName(f.Name) &&
		validation.IsValidEmail(f.Email) &&
		validation.IsValidPassword(f.Password) &&
		validation.PasswordsMatch(f.Password, f.ConfirmPassword)
}

// SignUpFlow is the single-step sign-up screen.
type SignUpFlow struct {
	submitter

	svc account.Service
	nav Navigator
	log *zap.Logger

	form           SignUpForm
	alerts         [4]string
	confirmTouched bool
}

func NewSignUpFlow(svc account.Service, nav Navigator, log *zap.Logger) *SignUpFlow {
	return &SignUpFlow{
		svc: svc,
		nav: nav,
		log: logger.OrNop(log).Named("signup"),
	}
}

// Set records an edit and recomputes that field's alert. Editing the
// password also refreshes the confirmation alert once it has been typed in.
func (f *SignUpFlow) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.form.Name = value
		f.alerts[FieldName] = alertIf(!validation.IsValidName(value), AlertName)
	case FieldEmail:
		f.form.Email = value
		f.alerts[FieldEmail] = alertIf(!validation.IsValidEmail(value), AlertEmail)
	case FieldPassword:
		f.form.Password = value
		f.alerts[FieldPassword] = alertIf(!validation.IsValidPassword(value), AlertPassword)
		if f.confirmTouched {
			f.alerts[FieldConfirmPassword] = alertIf(!validation.PasswordsMatch(value, f.form.ConfirmPassword), AlertPasswordConfirm)
		}
	case FieldConfirmPassword:
		f.form.ConfirmPassword = value
		f.confirmTouched = true
		f.alerts[FieldConfirmPassword] = alertIf(!validation.PasswordsMatch(f.form.Password, value), AlertPasswordConfirm)
	}
}

func (f *SignUpFlow) Form() SignUpForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *SignUpFlow) FieldAlert(field Field) string {
	if field < FieldName || field > FieldConfirmPassword {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alerts[field]
}

// Submit validates locally and, when the form is valid, signs up. On success
// the navigator is sent to login; on failure the form is kept for correction.
func (f *SignUpFlow) Submit(ctx context.Context) error {
	var req account.SignupRequest
	gen, err := f.begin(func() error {
		if !f.form.Valid() {
			return ErrInvalidInput
		}
		req = account.SignupRequest{Name: f.form.Name, Email: f.form.Email, Password: f.form.Password}
		return nil
	})
	if err != nil {
		f.log.Debug("submit rejected locally", zap.Error(err))
		return err
	}

	err = f.finish(gen, f.svc.Signup(ctx, req), nil)
	if err != nil {
		logFailure(f.log, "signup failed", err)
		return err
	}

	f.log.Info("account created", zap.String("email", req.Email))
	f.nav.GoToLogin()
	return nil
}

// GoToLogin is the "already have an account" action.
func (f *SignUpFlow) GoToLogin() {
	f.nav.GoToLogin()
}

func alertIf(failed bool, msg string) string {
	if failed {
		return msg
	}
	return ""
}

func logFailure(log *zap.Logger, msg string, err error) {
	var rejected *account.RejectedError
	if errors.As(err, &rejected) {
		log.Info(msg, zap.Int("status", rejected.Status), zap.String("reason", rejected.Message))
		return
	}
	log.Warn(msg, zap.Error(err))
}
