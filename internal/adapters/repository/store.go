// Package repository persists the onboarded profile in a durable key/value slot.
package repository

import (
	"context"

	"github.com/okian/swigup/internal/domain/profile"
)

// DefaultKey is the slot the profile is stored under.
const DefaultKey = "swigup_user"

// KV is a durable key/value slot store.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put overwrites the value under key.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Store saves and reloads the Profile across sessions.
type Store interface {
	// Save overwrites any previously stored profile.
	Save(ctx context.Context, p profile.Profile) error
	// Load returns false when nothing usable is stored. It never fails.
	Load(ctx context.Context) (profile.Profile, bool)
}
