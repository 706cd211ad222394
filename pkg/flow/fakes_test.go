package flow

import (
	"context"
	"sync"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
)

type fakeService struct {
	mu sync.Mutex

	signupErr, requestErr, checkErr, resetErr error

	signups  []account.SignupRequest
	requests []account.PasswordResetRequest
	checks   []account.CheckResetCodeRequest
	resets   []account.ResetPasswordRequest

	// block, when set, is waited on inside every call; checkBlock only inside
	// code checks.
	block      chan struct{}
	checkBlock chan struct{}
}

func (f *fakeService) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeService) Signup(_ context.Context, req account.SignupRequest) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups = append(f.signups, req)
	return f.signupErr
}

func (f *fakeService) RequestPasswordReset(_ context.Context, req account.PasswordResetRequest) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.requestErr
}

func (f *fakeService) CheckResetPasswordCode(_ context.Context, req account.CheckResetCodeRequest) error {
	f.wait()
	if f.checkBlock != nil {
		<-f.checkBlock
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks = append(f.checks, req)
	return f.checkErr
}

func (f *fakeService) ResetPassword(_ context.Context, req account.ResetPasswordRequest) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, req)
	return f.resetErr
}

func (f *fakeService) Login(context.Context, account.LoginRequest) (*account.LoginResponse, error) {
	return &account.LoginResponse{Token: "token"}, nil
}

func (f *fakeService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.signups) + len(f.requests) + len(f.checks) + len(f.resets)
}

type fakeNavigator struct {
	mu     sync.Mutex
	logins int
}

func (n *fakeNavigator) GoToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logins++
}

func (n *fakeNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.logins
}

func rejected(msg string) error {
	return &account.RejectedError{Status: 400, Message: msg}
}
