package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(svc *fakeService, nav *fakeNavigator) (*ResetWizard, *fakeClock) {
	clock := newFakeClock()
	return NewResetWizard(svc, nav, nil, WithCooldown(NewCooldown(ResendWindow, clock.Now))), clock
}

func TestResetWizard_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	nav := &fakeNavigator{}
	w, _ := newTestWizard(svc, nav)

	assert.Equal(t, AwaitingEmail{}, w.State())

	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))
	assert.Equal(t, AwaitingCode{Email: "a@b.com"}, w.State())
	assert.True(t, w.Cooldown().Running())

	require.NoError(t, w.SubmitCode(ctx, "123456"))
	assert.Equal(t, AwaitingNewPassword{Email: "a@b.com", Code: "123456"}, w.State())
	assert.False(t, w.Cooldown().Running())

	w.SetPassword("Passw0rd")
	w.SetConfirmPassword("Passw0rd")
	require.NoError(t, w.SubmitPassword(ctx))

	assert.Equal(t, ResetComplete{Email: "a@b.com"}, w.State())
	assert.Equal(t, 1, nav.count())
	require.Len(t, svc.resets, 1)
	assert.Equal(t, "a@b.com", svc.resets[0].Email)
	assert.Equal(t, "123456", svc.resets[0].Code)
	assert.Equal(t, "Passw0rd", svc.resets[0].Password)
	require.Len(t, svc.checks, 1)
	assert.Equal(t, "123456", svc.checks[0].Code)
}

func TestResetWizard_EmailRejectedStays(t *testing.T) {
	svc := &fakeService{requestErr: rejected("email not found")}
	w, _ := newTestWizard(svc, &fakeNavigator{})

	err := w.SubmitEmail(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.Equal(t, AwaitingEmail{}, w.State())
	assert.Equal(t, RequestOutcome{Alert: "email not found"}, w.Outcome())
	assert.False(t, w.Cooldown().Running())
}

func TestResetWizard_InvalidEmailNoRequest(t *testing.T) {
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})

	require.ErrorIs(t, w.SubmitEmail(context.Background(), "nope"), ErrInvalidInput)
	assert.Equal(t, 0, svc.calls())
	assert.Equal(t, AlertInvalidInput, w.Outcome().Alert)
}

func TestResetWizard_CodeShapeCheckedLocally(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))

	for _, code := range []string{"", "12345", "abcdef", "1234567"} {
		require.ErrorIs(t, w.SubmitCode(ctx, code), ErrInvalidInput, code)
	}
	assert.Empty(t, svc.checks)
	assert.Equal(t, AwaitingCode{Email: "a@b.com"}, w.State())
}

func TestResetWizard_CodeRejectedStays(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{checkErr: rejected("invalid or expired code")}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))

	require.Error(t, w.SubmitCode(ctx, "654321"))
	assert.Equal(t, AwaitingCode{Email: "a@b.com"}, w.State())
	assert.Equal(t, "invalid or expired code", w.Outcome().Alert)
}

func TestResetWizard_BackClearsEmail(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{checkErr: rejected("invalid or expired code")}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))
	require.Error(t, w.SubmitCode(ctx, "111111"))

	require.NoError(t, w.Back())
	assert.Equal(t, AwaitingEmail{}, w.State())
	assert.Empty(t, w.Outcome().Alert)
	assert.False(t, w.Cooldown().Running())

	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)

	// a new email is required to go forward again
	svc.checkErr = nil
	require.NoError(t, w.SubmitEmail(ctx, "c@d.com"))
	assert.Equal(t, AwaitingCode{Email: "c@d.com"}, w.State())
}

func TestResetWizard_ResendRestartsCooldown(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	w, clock := newTestWizard(svc, &fakeNavigator{})

	assert.ErrorIs(t, w.ResendCode(ctx), ErrInvalidTransition)

	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))
	clock.Advance(61 * time.Second)
	assert.True(t, w.Cooldown().CanResend())

	require.NoError(t, w.ResendCode(ctx))
	assert.Equal(t, ResendWindow, w.Cooldown().Remaining())
	require.Len(t, svc.requests, 2)
	assert.Equal(t, "a@b.com", svc.requests[1].Email)

	// not gated by the cooldown
	require.NoError(t, w.ResendCode(ctx))
	assert.Len(t, svc.requests, 3)
}

func TestResetWizard_ResendFailureLeavesAlert(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))

	svc.requestErr = rejected("slow down")
	require.Error(t, w.ResendCode(ctx))
	assert.Empty(t, w.Outcome().Alert)
	assert.Equal(t, AwaitingCode{Email: "a@b.com"}, w.State())
}

func toPasswordStage(t *testing.T, w *ResetWizard) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))
	require.NoError(t, w.SubmitCode(ctx, "123456"))
}

func TestResetWizard_PasswordRejectedByServer(t *testing.T) {
	svc := &fakeService{resetErr: rejected("Code expired")}
	nav := &fakeNavigator{}
	w, _ := newTestWizard(svc, nav)
	toPasswordStage(t, w)

	w.SetPassword("Passw0rd")
	w.SetConfirmPassword("Passw0rd")
	require.Error(t, w.SubmitPassword(context.Background()))

	assert.Equal(t, AwaitingNewPassword{Email: "a@b.com", Code: "123456"}, w.State())
	assert.Equal(t, "Code expired", w.Outcome().Alert)
	assert.False(t, w.Outcome().Loading)
	assert.Equal(t, 0, nav.count())
}

func TestResetWizard_PasswordValidatedLocally(t *testing.T) {
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	toPasswordStage(t, w)

	w.SetPassword("short")
	assert.Equal(t, AlertPassword, w.PasswordAlert())
	w.SetConfirmPassword("short")
	assert.Empty(t, w.ConfirmPasswordAlert())
	require.ErrorIs(t, w.SubmitPassword(context.Background()), ErrInvalidInput)

	w.SetPassword("Passw0rd")
	assert.Empty(t, w.PasswordAlert())
	assert.Equal(t, AlertPasswordConfirm, w.ConfirmPasswordAlert())
	require.ErrorIs(t, w.SubmitPassword(context.Background()), ErrInvalidInput)

	assert.Empty(t, svc.resets)
	assert.Equal(t, AlertInvalidInput, w.Outcome().Alert)
}

func TestResetWizard_ActionsOutOfStage(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})

	assert.ErrorIs(t, w.SubmitCode(ctx, "123456"), ErrInvalidTransition)
	assert.ErrorIs(t, w.SubmitPassword(ctx), ErrInvalidTransition)
	assert.Equal(t, 0, svc.calls())
	assert.Empty(t, w.Outcome().Alert)

	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))
	assert.ErrorIs(t, w.SubmitEmail(ctx, "a@b.com"), ErrInvalidTransition)
}

func TestResetWizard_StaleResultDroppedAfterBack(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))

	svc.checkErr = rejected("invalid or expired code")
	svc.checkBlock = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- w.SubmitCode(ctx, "123456") }()

	require.Eventually(t, func() bool { return w.Outcome().Loading }, time.Second, time.Millisecond)
	assert.ErrorIs(t, w.SubmitCode(ctx, "123456"), ErrRequestInFlight)
	require.NoError(t, w.Back())
	assert.Equal(t, RequestOutcome{}, w.Outcome())

	close(svc.checkBlock)
	require.Error(t, <-done)
	assert.Equal(t, AwaitingEmail{}, w.State())
	assert.Equal(t, RequestOutcome{}, w.Outcome())
}

func TestResetWizard_StaleCodeCannotAdvanceNewEmail(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	w, _ := newTestWizard(svc, &fakeNavigator{})
	require.NoError(t, w.SubmitEmail(ctx, "a@b.com"))

	svc.checkBlock = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- w.SubmitCode(ctx, "123456") }()

	require.Eventually(t, func() bool { return w.Outcome().Loading }, time.Second, time.Millisecond)
	require.NoError(t, w.Back())
	require.NoError(t, w.SubmitEmail(ctx, "c@d.com"))
	require.Equal(t, AwaitingCode{Email: "c@d.com"}, w.State())

	close(svc.checkBlock)
	require.NoError(t, <-done)
	assert.Equal(t, AwaitingCode{Email: "c@d.com"}, w.State())
	assert.Equal(t, RequestOutcome{}, w.Outcome())
	assert.True(t, w.Cooldown().Running())
}

func TestResetWizard_ReturnToLogin(t *testing.T) {
	nav := &fakeNavigator{}
	w, _ := newTestWizard(&fakeService{}, nav)
	w.ReturnToLogin()
	assert.Equal(t, 1, nav.count())
}
