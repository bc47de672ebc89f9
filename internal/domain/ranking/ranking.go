// Package ranking merges the live user into the comparison roster and orders
// everyone by progress toward their own goal.
package ranking

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/profile"
)

// DefaultSelfSuffix is appended to the profile name on the self entry.
const DefaultSelfSuffix = " (You)"

// Entry is one leaderboard participant. Entries are rebuilt on every request.
type Entry struct {
	DisplayName string `json:"display_name" koanf:"name"`
	GoalMl      int    `json:"goal_ml" koanf:"goal_ml"`
	CurrentMl   int    `json:"current_ml" koanf:"current_ml"`
	StreakDays  int    `json:"streak_days" koanf:"streak_days"`
	IsSelf      bool   `json:"is_self" koanf:"-"`
}

// Standing is an Entry placed in the ordered output.
type Standing struct {
	Entry
	Rank       int     `json:"rank"`
	Percentage float64 `json:"percentage"`
}

// DefaultRoster returns the fixed comparison community.
func DefaultRoster() []Entry {
	return []Entry{
		{DisplayName: "HydroKing", GoalMl: 3000, CurrentMl: 2800, StreakDays: 12},
		{DisplayName: "AquaGirl", GoalMl: 2000, CurrentMl: 1500, StreakDays: 5},
		{DisplayName: "GymRat99", GoalMl: 4000, CurrentMl: 1200, StreakDays: 3},
		{DisplayName: "SipSip", GoalMl: 2500, CurrentMl: 200, StreakDays: 0},
	}
}

// Option applies a configuration option to a leaderboard build.
type Option func(*builder)

type builder struct {
	selfSuffix string
}

// WithSelfSuffix changes the marker appended to the self display name.
func WithSelfSuffix(suffix string) Option {
	return func(b *builder) {
		b.selfSuffix = suffix
	}
}

// SelfEntry derives the live user's entry.
func SelfEntry(p profile.Profile, st hydration.State, suffix string) Entry {
	return Entry{
		DisplayName: p.Name + suffix,
		GoalMl:      p.GoalMl,
		CurrentMl:   st.CurrentMl,
		StreakDays:  0,
		IsSelf:      true,
	}
}

// BuildLeaderboard returns the self entry and roster ordered by
// currentMl/goalMl descending. Ties fall back to streak days descending,
// then display name ascending, then the self entry first. Any entry with a
// non-positive goal aborts the build with ErrDivisionByZero.
func BuildLeaderboard(p profile.Profile, st hydration.State, roster []Entry, opts ...Option) ([]Standing, error) {
	b := builder{selfSuffix: DefaultSelfSuffix}
	for _, opt := range opts {
		opt(&b)
	}

	all := make([]Entry, 0, len(roster)+1)
	all = append(all, SelfEntry(p, st, b.selfSuffix))
	for _, e := range roster {
		e.IsSelf = false
		all = append(all, e)
	}

	for _, e := range all {
		if err := validate(e); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return ahead(all[i], all[j]) })

	out := make([]Standing, len(all))
	for i, e := range all {
		pct, err := hydration.Percentage(e.CurrentMl, e.GoalMl)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDivisionByZero, e.DisplayName)
		}
		out[i] = Standing{Entry: e, Rank: i + 1, Percentage: pct}
	}
	return out, nil
}

// Self returns the self standing from an ordered leaderboard.
func Self(board []Standing) (Standing, bool) {
	for _, s := range board {
		if s.IsSelf {
			return s, true
		}
	}
	return Standing{}, false
}

// ValidateRoster checks static roster data before it is used.
func ValidateRoster(roster []Entry) error {
	for _, e := range roster {
		if err := validate(e); err != nil {
			return err
		}
	}
	return nil
}

func validate(e Entry) error {
	if e.GoalMl <= 0 {
		return fmt.Errorf("%w: %q has goal %d ml", ErrDivisionByZero, e.DisplayName, e.GoalMl)
	}
	if e.CurrentMl < 0 || e.StreakDays < 0 {
		return fmt.Errorf("%w: %q has negative progress", ErrInvalidEntry, e.DisplayName)
	}
	return nil
}

// ahead reports whether a ranks before b.
func ahead(a, b Entry) bool {
	if c := compareRatio(a, b); c != 0 {
		return c > 0
	}
	if a.StreakDays != b.StreakDays {
		return a.StreakDays > b.StreakDays
	}
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.IsSelf && !b.IsSelf
}

// compareRatio compares a.current/a.goal with b.current/b.goal exactly by
// cross-multiplying in 128 bits. Both entries must already be validated.
func compareRatio(a, b Entry) int {
	lhsHi, lhsLo := bits.Mul64(uint64(a.CurrentMl), uint64(b.GoalMl))
	rhsHi, rhsLo := bits.Mul64(uint64(b.CurrentMl), uint64(a.GoalMl))
	switch {
	case lhsHi != rhsHi:
		if lhsHi > rhsHi {
			return 1
		}
		return -1
	case lhsLo != rhsLo:
		if lhsLo > rhsLo {
			return 1
		}
		return -1
	}
	return 0
}
