// Package hydration accumulates intake for the active period and derives
// progress against the profile goal.
package hydration

import (
	"fmt"
	"math"

	"github.com/okian/swigup/internal/domain/profile"
)

const maxPercentage = 100

// State is the in-memory snapshot of the active period.
type State struct {
	CurrentMl  int     `json:"current_ml"`
	Percentage float64 `json:"percentage"`
}

// Observer is notified with the new State after every mutation.
type Observer func(State)

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithObserver subscribes fn to state changes.
func WithObserver(fn Observer) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.observers = append(t.observers, fn)
		}
	}
}

// Tracker owns the HydrationState for one profile. It is not safe for
// concurrent use; callers serialize access.
type Tracker struct {
	goalMl    int
	state     State
	observers []Observer
}

// NewTracker starts an empty period for p.
func NewTracker(p profile.Profile, opts ...Option) *Tracker {
	t := &Tracker{goalMl: p.GoalMl}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GoalMl returns the goal the tracker measures against.
func (t *Tracker) GoalMl() int { return t.goalMl }

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State { return t.state }

// AddIntake folds amountMl into the period total. Intake may exceed the goal;
// only the percentage is clamped.
func (t *Tracker) AddIntake(amountMl int) (State, error) {
	if amountMl <= 0 {
		return t.state, fmt.Errorf("%w: %d ml", ErrInvalidAmount, amountMl)
	}
	if amountMl > math.MaxInt-t.state.CurrentMl {
		return t.state, fmt.Errorf("%w: %d ml overflows period total", ErrInvalidAmount, amountMl)
	}

	current := t.state.CurrentMl + amountMl
	pct, err := Percentage(current, t.goalMl)
	if err != nil {
		return t.state, err
	}

	t.state = State{CurrentMl: current, Percentage: pct}
	t.notify()
	return t.state, nil
}

// StartNewPeriod zeroes the period. Calling it repeatedly is harmless.
func (t *Tracker) StartNewPeriod() State {
	t.state = State{}
	t.notify()
	return t.state
}

func (t *Tracker) notify() {
	for _, fn := range t.observers {
		fn(t.state)
	}
}

// Percentage returns min(current/goal*100, 100).
func Percentage(currentMl, goalMl int) (float64, error) {
	if goalMl <= 0 {
		return 0, fmt.Errorf("%w: goal is %d ml", ErrInvariantViolation, goalMl)
	}
	if currentMl <= 0 {
		return 0, nil
	}
	return math.Min(float64(currentMl)*maxPercentage/float64(goalMl), maxPercentage), nil
}
