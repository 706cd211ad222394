package flow

import (
	"errors"
	"strings"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
)

var (
	// ErrInvalidInput is a local validation rejection; no request was sent.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRequestInFlight is returned when a submit arrives while the previous
	// one has not settled.
	ErrRequestInFlight = errors.New("request already in flight")
	// ErrInvalidTransition is returned for actions the current stage does not accept.
	ErrInvalidTransition = errors.New("invalid transition")
)

const (
	AlertInvalidInput = "Invalid input."
	AlertFallback     = "Something went wrong. Please try again."

	AlertName            = "Please enter your name."
	AlertEmail           = "Please enter your email."
	AlertPassword        = "Use 8+ characters with at least 1 digit, 1 uppercase and 1 lowercase."
	AlertPasswordConfirm = "Password mismatch."
)

// AlertFor maps a submit failure to the text shown to the user. Service
// rejections are shown verbatim; anything without a usable message gets
// AlertFallback.
func AlertFor(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidInput) {
		return AlertInvalidInput
	}
	var rejected *account.RejectedError
	if errors.As(err, &rejected) && strings.TrimSpace(rejected.Message) != "" {
		return rejected.Message
	}
	return AlertFallback
}
