package binary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// nextStates lists the legal successors of each non-terminal state: the
// next stage on success, or that stage's failure.
var nextStates = map[State][2]State{
	StateUnresolved: {StateResolved, StateResolutionFailed},
	StateResolved:   {StateDownloaded, StateDownloadFailed},
	StateDownloaded: {StateVerified, StateVerificationFailed},
	StateVerified:   {StateInstalled, StateInstallFailed},
}

// Attempt tracks one run of the pipeline.
type Attempt struct {
	ID          string
	State       State
	Transitions []Transition
	started     time.Time
	now         func() time.Time
}

func newAttempt() *Attempt {
	return &Attempt{
		ID:      uuid.New().String(),
		State:   StateUnresolved,
		started: time.Now(),
		now:     time.Now,
	}
}

// Advance moves the attempt to the given state. Skipping a stage or leaving
// a terminal state is an error.
func (a *Attempt) Advance(to State) error {
	if a.State.IsTerminal() {
		return fmt.Errorf("attempt already finished in %s", a.State)
	}
	next, ok := nextStates[a.State]
	if !ok || (to != next[0] && to != next[1]) {
		return fmt.Errorf("illegal transition %s -> %s", a.State, to)
	}
	a.Transitions = append(a.Transitions, Transition{From: a.State, To: to, At: a.now()})
	a.State = to
	return nil
}

// Elapsed returns the time since the attempt started.
func (a *Attempt) Elapsed() time.Duration {
	return a.now().Sub(a.started)
}
