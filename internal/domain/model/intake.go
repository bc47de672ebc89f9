// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/intake"
)

// IntakeResult reports what a logged intake did to the active period.
type IntakeResult struct {
	EventID   string          `json:"event_id,omitempty"` // idempotency key, if the client sent one
	AmountMl  int             `json:"amount_ml"`
	Source    intake.Source   `json:"source"`
	Fallback  intake.Fallback `json:"fallback,omitempty"` // scan default tier that produced the amount
	Duplicate bool            `json:"duplicate"`
	State     hydration.State `json:"state"`
	At        time.Time       `json:"at"`
}
