package repository

import (
	"context"
	"fmt"

	"github.com/okian/swigup/internal/domain/profile"
	"github.com/okian/swigup/pkg/logger"
	"github.com/okian/swigup/pkg/metrics"
)

// ProfileStore keeps one versioned profile under a fixed key of a KV.
type ProfileStore struct {
	kv     KV
	key    string
	logger logger.Logger
}

// NewProfileStore wraps kv with configuration options.
func NewProfileStore(kv KV, opts ...Option) *ProfileStore {
	s := &ProfileStore{
		kv:     kv,
		key:    DefaultKey,
		logger: logger.Get().Named("profile_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save overwrites the stored profile. Last write wins.
func (s *ProfileStore) Save(ctx context.Context, p profile.Profile) error {
	raw, err := encodeProfile(p)
	if err != nil {
		metrics.RecordProfileStoreOp("save", "error")
		return err
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		metrics.RecordProfileStoreOp("save", "error")
		return fmt.Errorf("save profile %q: %w", s.key, err)
	}
	metrics.RecordProfileStoreOp("save", "ok")
	return nil
}

// Load returns the stored profile. Missing, unreadable, or corrupt data is
// reported as absent so the caller routes to onboarding.
func (s *ProfileStore) Load(ctx context.Context) (profile.Profile, bool) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn(ctx, "profile slot unreadable; treating as absent", logger.String("key", s.key), logger.Error(err))
		metrics.RecordProfileStoreOp("load", "error")
		return profile.Profile{}, false
	}
	if !ok {
		metrics.RecordProfileStoreOp("load", "absent")
		return profile.Profile{}, false
	}

	p, err := decodeProfile(raw)
	if err != nil {
		s.logger.Warn(ctx, "stored profile discarded", logger.String("key", s.key), logger.Error(err))
		metrics.RecordProfileStoreOp("load", "corrupt")
		return profile.Profile{}, false
	}
	metrics.RecordProfileStoreOp("load", "ok")
	return p, true
}
