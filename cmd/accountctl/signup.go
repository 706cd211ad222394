package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/flow"
)

const cmdLogin = ":login"

func runSignup(ctx context.Context, p *prompter, svc account.Service, log *zap.Logger) error {
	var toLogin bool
	nav := flow.NavigatorFunc(func() {
		toLogin = true
		p.say("Log in with: accountctl login")
	})
	f := flow.NewSignUpFlow(svc, nav, log)

	p.say("Create your account (type %s at the email prompt to log in instead)", cmdLogin)
	fields := []flow.Field{flow.FieldName, flow.FieldEmail, flow.FieldPassword, flow.FieldConfirmPassword}
	for {
		for _, field := range fields {
			if err := askField(p, f, field); err != nil {
				return err
			}
			if toLogin {
				return nil
			}
		}

		err := f.Submit(ctx)
		switch {
		case err == nil:
			p.say("Account created.")
			return nil
		case errors.Is(err, flow.ErrInvalidInput):
			p.alert(f.Outcome().Alert)
			fields = invalidFields(f)
		default:
			p.alert(f.Outcome().Alert)
			fields = []flow.Field{flow.FieldName, flow.FieldEmail, flow.FieldPassword, flow.FieldConfirmPassword}
		}
	}
}

// askField prompts until the field passes its predicate.
func askField(p *prompter, f *flow.SignUpFlow, field flow.Field) error {
	for {
		var (
			value string
			err   error
		)
		switch field {
		case flow.FieldPassword:
			value, err = p.secret("Password")
		case flow.FieldConfirmPassword:
			value, err = p.secret("Confirm password")
		case flow.FieldName:
			value, err = p.line("Name")
		case flow.FieldEmail:
			value, err = p.line("Email")
			if err == nil && value == cmdLogin {
				f.GoToLogin()
				return nil
			}
		}
		if err != nil {
			return err
		}

		f.Set(field, value)
		alert := f.FieldAlert(field)
		if alert == "" {
			return nil
		}
		p.alert(alert)
	}
}

func invalidFields(f *flow.SignUpFlow) []flow.Field {
	var out []flow.Field
	for _, field := range []flow.Field{flow.FieldName, flow.FieldEmail, flow.FieldPassword, flow.FieldConfirmPassword} {
		if f.FieldAlert(field) != "" {
			out = append(out, field)
		}
	}
	if len(out) == 0 {
		out = []flow.Field{flow.FieldConfirmPassword}
	}
	return out
}
