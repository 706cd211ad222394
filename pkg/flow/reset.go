package flow

import "fmt"

type Stage int

const (
	StageAwaitingEmail Stage = iota
	StageAwaitingCode
	StageAwaitingNewPassword
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingEmail:
		return "awaiting_email"
	case StageAwaitingCode:
		return "awaiting_code"
	case StageAwaitingNewPassword:
		return "awaiting_new_password"
	case StageComplete:
		return "complete"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ResetState is one stage of the password-reset wizard. Each stage carries
// only what earlier stages confirmed.
type ResetState interface {
	Stage() Stage
}

type AwaitingEmail struct{}

type AwaitingCode struct {
	Email string
}

type AwaitingNewPassword struct {
	Email string
	Code  string
}

// ResetComplete is terminal; the driver navigates to login on entry.
type ResetComplete struct {
	Email string
}

func (AwaitingEmail) Stage() Stage       { return StageAwaitingEmail }
func (AwaitingCode) Stage() Stage        { return StageAwaitingCode }
func (AwaitingNewPassword) Stage() Stage { return StageAwaitingNewPassword }
func (ResetComplete) Stage() Stage       { return StageComplete }

// ResetEvent is a confirmed outcome or user action fed to Transition.
type ResetEvent interface {
	resetEvent()
}

// EmailAccepted: the service accepted the reset request for Email.
type EmailAccepted struct {
	Email string
}

// CodeAccepted: the service confirmed Code.
type CodeAccepted struct {
	Code string
}

// BackToEmail discards the email and returns to the first stage.
type BackToEmail struct{}

// PasswordChanged: the service accepted the new password.
type PasswordChanged struct{}

func (EmailAccepted) resetEvent()   {}
func (CodeAccepted) resetEvent()    {}
func (BackToEmail) resetEvent()     {}
func (PasswordChanged) resetEvent() {}

// Transition is the pure transition function of the wizard. Stages advance
// one at a time; the only backward edge is AwaitingCode -> AwaitingEmail.
func Transition(state ResetState, event ResetEvent) (ResetState, error) {
	switch s := state.(type) {
	case AwaitingEmail:
		if e, ok := event.(EmailAccepted); ok && e.Email != "" {
			return AwaitingCode{Email: e.Email}, nil
		}
	case AwaitingCode:
		switch e := event.(type) {
		case CodeAccepted:
			if e.Code != "" {
				return AwaitingNewPassword{Email: s.Email, Code: e.Code}, nil
			}
		case BackToEmail:
			return AwaitingEmail{}, nil
		}
	case AwaitingNewPassword:
		if _, ok := event.(PasswordChanged); ok {
			return ResetComplete{Email: s.Email}, nil
		}
	}
	return state, fmt.Errorf("%w: %T in %s", ErrInvalidTransition, event, stageOf(state))
}

func stageOf(state ResetState) string {
	if state == nil {
		return "<nil>"
	}
	return state.Stage().String()
}
