package flow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

// ResetWizard drives the password-reset state machine: it validates input,
// issues the service call for the current stage and feeds the confirmed
// outcome to Transition.
type ResetWizard struct {
	submitter

	svc      account.Service
	nav      Navigator
	log      *zap.Logger
	cooldown *Cooldown

	state ResetState

	password       string
	confirm        string
	passwordAlert  string
	confirmAlert   string
	confirmTouched bool
}

type ResetOption func(*ResetWizard)

// WithCooldown replaces the default ResendWindow cooldown.
func WithCooldown(c *Cooldown) ResetOption {
	return func(w *ResetWizard) { w.cooldown = c }
}

func NewResetWizard(svc account.Service, nav Navigator, log *zap.Logger, opts ...ResetOption) *ResetWizard {
	w := &ResetWizard{
		svc:   svc,
		nav:   nav,
		log:   logger.OrNop(log).Named("reset"),
		state: AwaitingEmail{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.cooldown == nil {
		w.cooldown = NewCooldown(ResendWindow, nil)
	}
	return w
}

func (w *ResetWizard) State() ResetState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *ResetWizard) Cooldown() *Cooldown { return w.cooldown }

// SubmitEmail requests a reset code for email and, once the service accepts,
// moves to AwaitingCode carrying exactly that email.
func (w *ResetWizard) SubmitEmail(ctx context.Context, email string) error {
	gen, err := w.begin(func() error {
		if err := w.expect(StageAwaitingEmail); err != nil {
			return err
		}
		if !validation.IsValidEmail(email) {
			return ErrInvalidInput
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = w.finish(gen, w.svc.RequestPasswordReset(ctx, account.PasswordResetRequest{Email: email}), func() {
		if w.apply(EmailAccepted{Email: email}) {
			w.cooldown.Restart()
		}
	})
	if err != nil {
		logFailure(w.log, "reset request failed", err)
	}
	return err
}

// SubmitCode checks the code shape locally and lets the service confirm it.
func (w *ResetWizard) SubmitCode(ctx context.Context, code string) error {
	gen, err := w.begin(func() error {
		if err := w.expect(StageAwaitingCode); err != nil {
			return err
		}
		if !validation.IsValidResetCode(code) {
			return ErrInvalidInput
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = w.finish(gen, w.svc.CheckResetPasswordCode(ctx, account.CheckResetCodeRequest{Code: code}), func() {
		if w.apply(CodeAccepted{Code: code}) {
			w.cooldown.Stop()
		}
	})
	if err != nil {
		logFailure(w.log, "code check failed", err)
	}
	return err
}

// ResendCode re-requests a code for the current email and restarts the
// cooldown. It bypasses the loading/alert contract and is not gated by the
// cooldown.
func (w *ResetWizard) ResendCode(ctx context.Context) error {
	w.mu.Lock()
	s, ok := w.state.(AwaitingCode)
	w.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: resend in %s", ErrInvalidTransition, w.State().Stage())
	}

	w.cooldown.Restart()
	if err := w.svc.RequestPasswordReset(ctx, account.PasswordResetRequest{Email: s.Email}); err != nil {
		logFailure(w.log, "resend failed", err)
		return err
	}
	w.log.Debug("reset code resent")
	return nil
}

// Back returns from AwaitingCode to AwaitingEmail, discarding the email. A
// code check still in flight is abandoned: its result reaches the caller of
// SubmitCode but neither the state nor the outcome.
func (w *ResetWizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := Transition(w.state, BackToEmail{})
	if err != nil {
		return err
	}
	w.state = next
	w.supersede()
	w.cooldown.Stop()
	w.log.Debug("back to email")
	return nil
}

func (w *ResetWizard) SetPassword(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.password = value
	w.passwordAlert = alertIf(!validation.IsValidPassword(value), AlertPassword)
	if w.confirmTouched {
		w.confirmAlert = alertIf(!validation.PasswordsMatch(value, w.confirm), AlertPasswordConfirm)
	}
}

func (w *ResetWizard) SetConfirmPassword(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.confirm = value
	w.confirmTouched = true
	w.confirmAlert = alertIf(!validation.PasswordsMatch(w.password, value), AlertPasswordConfirm)
}

func (w *ResetWizard) PasswordAlert() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.passwordAlert
}

func (w *ResetWizard) ConfirmPasswordAlert() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirmAlert
}

// SubmitPassword resets the password with the confirmed email and code and
// navigates to login on success.
func (w *ResetWizard) SubmitPassword(ctx context.Context) error {
	var req account.ResetPasswordRequest
	gen, err := w.begin(func() error {
		if err := w.expect(StageAwaitingNewPassword); err != nil {
			return err
		}
		if !validation.IsValidPassword(w.password) || !validation.PasswordsMatch(w.password, w.confirm) {
			return ErrInvalidInput
		}
		s := w.state.(AwaitingNewPassword)
		req = account.ResetPasswordRequest{Email: s.Email, Code: s.Code, Password: w.password}
		return nil
	})
	if err != nil {
		return err
	}

	var done bool
	err = w.finish(gen, w.svc.ResetPassword(ctx, req), func() {
		done = w.apply(PasswordChanged{})
		if done {
			w.password, w.confirm = "", ""
		}
	})
	if err != nil {
		logFailure(w.log, "password reset failed", err)
		return err
	}
	if done {
		w.log.Info("password reset", zap.String("email", req.Email))
		w.nav.GoToLogin()
	}
	return nil
}

// ReturnToLogin is the "return to log in" action.
func (w *ResetWizard) ReturnToLogin() {
	w.nav.GoToLogin()
}

// expect must be called with the lock held.
func (w *ResetWizard) expect(stage Stage) error {
	if got := w.state.Stage(); got != stage {
		return fmt.Errorf("%w: expected %s, in %s", ErrInvalidTransition, stage, got)
	}
	return nil
}

// apply must be called with the lock held. A result that no longer fits the
// current stage (the user went back while the request was in flight) is
// dropped.
func (w *ResetWizard) apply(event ResetEvent) bool {
	next, err := Transition(w.state, event)
	if err != nil {
		w.log.Debug("stale result dropped", zap.Error(err))
		return false
	}
	w.log.Debug("transition", zap.Stringer("from", w.state.Stage()), zap.Stringer("to", next.Stage()))
	w.state = next
	return true
}
