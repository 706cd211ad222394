package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/flow"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

const (
	cmdBack   = ":back"
	cmdResend = ":resend"
)

func runReset(ctx context.Context, p *prompter, svc account.Service, log *zap.Logger, email string) error {
	var toLogin bool
	nav := flow.NavigatorFunc(func() {
		toLogin = true
		p.say("Log in with: accountctl login")
	})
	w := flow.NewResetWizard(svc, nav, log)

	for !toLogin {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch s := w.State().(type) {
		case flow.AwaitingEmail:
			if email == "" {
				var err error
				p.say("Enter the email of your account (%s to return to log in).", cmdLogin)
				if email, err = p.line("Email"); err != nil {
					return err
				}
			}
			if email == cmdLogin {
				w.ReturnToLogin()
				continue
			}
			if err := w.SubmitEmail(ctx, email); err != nil {
				reportAlert(p, w, err)
			}
			email = ""

		case flow.AwaitingCode:
			p.say("We sent a %d-digit code to %s.", validation.ResetCodeLength, s.Email)
			p.alert(w.Cooldown().Label())
			stop := p.liveLabel(ctx, w.Cooldown())
			code, err := p.line(fmt.Sprintf("Code (%s, %s)", cmdResend, cmdBack))
			stop()
			if err != nil {
				return err
			}
			switch code {
			case cmdBack:
				if err := w.Back(); err != nil {
					return err
				}
			case cmdResend:
				if !w.Cooldown().CanResend() {
					continue
				}
				if err := w.ResendCode(ctx); err != nil {
					p.alert(flow.AlertFor(err))
				} else {
					p.say("A new code is on its way.")
				}
			default:
				if err := w.SubmitCode(ctx, code); err != nil {
					reportAlert(p, w, err)
				}
			}

		case flow.AwaitingNewPassword:
			if err := askNewPassword(p, w); err != nil {
				return err
			}
			if err := w.SubmitPassword(ctx); err != nil {
				reportAlert(p, w, err)
				continue
			}
			p.say("Your password has been changed.")

		case flow.ResetComplete:
			return nil
		}
	}
	return nil
}

func askNewPassword(p *prompter, w *flow.ResetWizard) error {
	for {
		pw, err := p.secret("New password")
		if err != nil {
			return err
		}
		w.SetPassword(pw)
		if alert := w.PasswordAlert(); alert != "" {
			p.alert(alert)
			continue
		}
		break
	}
	for {
		confirm, err := p.secret("Confirm password")
		if err != nil {
			return err
		}
		w.SetConfirmPassword(confirm)
		if alert := w.ConfirmPasswordAlert(); alert != "" {
			p.alert(alert)
			continue
		}
		return nil
	}
}

// reportAlert prints the wizard alert, falling back to the error itself for
// misuse that never reaches the request contract.
func reportAlert(p *prompter, w *flow.ResetWizard, err error) {
	if alert := w.Outcome().Alert; alert != "" {
		p.alert(alert)
		return
	}
	if errors.Is(err, flow.ErrInvalidTransition) || errors.Is(err, flow.ErrRequestInFlight) {
		p.alert(err.Error())
	}
}
