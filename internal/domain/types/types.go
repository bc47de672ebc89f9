// Package types contains the read shapes returned by leaderboard queries.
package types

import (
	"time"

	"github.com/okian/swigup/internal/domain/ranking"
)

// Entry is one leaderboard row as exposed to clients.
type Entry struct {
	Rank        int     `json:"rank"`
	DisplayName string  `json:"display_name"`
	GoalMl      int     `json:"goal_ml"`
	CurrentMl   int     `json:"current_ml"`
	StreakDays  int     `json:"streak_days"`
	Percentage  float64 `json:"percentage"`
	IsSelf      bool    `json:"is_self"`
}

// Leaderboard is the ordered board plus the caller's own position.
type Leaderboard struct {
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Self        Entry     `json:"self"`
	Entries     []Entry   `json:"entries"`
}

// FromStanding converts a ranked standing into its read shape.
func FromStanding(s ranking.Standing) Entry {
	return Entry{
		Rank:        s.Rank,
		DisplayName: s.DisplayName,
		GoalMl:      s.GoalMl,
		CurrentMl:   s.CurrentMl,
		StreakDays:  s.StreakDays,
		Percentage:  s.Percentage,
		IsSelf:      s.IsSelf,
	}
}

// NewLeaderboard wraps an ordered board generated at ts.
func NewLeaderboard(board []ranking.Standing, ts time.Time) Leaderboard {
	lb := Leaderboard{
		GeneratedAt: ts,
		Total:       len(board),
		Entries:     make([]Entry, len(board)),
	}
	for i, s := range board {
		lb.Entries[i] = FromStanding(s)
		if s.IsSelf {
			lb.Self = lb.Entries[i]
		}
	}
	return lb
}
