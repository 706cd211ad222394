package flow

import (
	"errors"
	"sync"
)

// RequestOutcome is the loading/alert pair of a flow. Alert is cleared at the
// start of every accepted submit.
type RequestOutcome struct {
	Loading bool
	Alert   string
}

// submitter implements the submit contract shared by every flow. The mutex
// also guards the state of the flow embedding it.
type submitter struct {
	mu      sync.Mutex
	outcome RequestOutcome
	gen     uint64
}

// begin runs check under the lock and returns the generation of the accepted
// request. A failing check leaves loading untouched; ErrInvalidInput
// additionally sets the generic alert.
func (s *submitter) begin(check func() error) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.Loading {
		return 0, ErrRequestInFlight
	}
	if err := check(); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.outcome.Alert = AlertInvalidInput
		}
		return 0, err
	}
	s.gen++
	s.outcome = RequestOutcome{Loading: true}
	return s.gen, nil
}

// supersede abandons the request in flight, if any. Its result is still
// returned to the caller but no longer touches the outcome. Call with mu held.
func (s *submitter) supersede() {
	s.gen++
	s.outcome = RequestOutcome{}
}

// finish settles request gen. On success onSuccess runs under the lock; on
// failure the alert is derived from err.
func (s *submitter) finish(gen uint64, err error, onSuccess func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return err
	}
	s.outcome.Loading = false
	if err != nil {
		s.outcome.Alert = AlertFor(err)
		return err
	}
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

func (s *submitter) Outcome() RequestOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}
