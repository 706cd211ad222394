package main

import (
	"context"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/flow"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

func runLogin(ctx context.Context, p *prompter, svc account.Service, email string) error {
	for {
		if email == "" {
			var err error
			if email, err = p.line("Email"); err != nil {
				return err
			}
		}
		if !validation.IsValidEmail(email) {
			p.alert(flow.AlertEmail)
			email = ""
			continue
		}

		password, err := p.secret("Password")
		if err != nil {
			return err
		}

		resp, err := svc.Login(ctx, account.LoginRequest{Email: email, Password: password})
		if err != nil {
			p.alert(flow.AlertFor(err))
			email = ""
			continue
		}

		p.say("Logged in.")
		p.say("%s", resp.Token)
		return nil
	}
}
