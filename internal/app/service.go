// Package service holds the hydration session: the one onboarded profile,
// its tracker, and the collaborators every request is routed through.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/swigup/internal/adapters/repository"
	"github.com/okian/swigup/internal/domain/dedupe"
	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/intake"
	"github.com/okian/swigup/internal/domain/profile"
	"github.com/okian/swigup/internal/domain/ranking"
	"github.com/okian/swigup/pkg/logger"
	"github.com/okian/swigup/pkg/metrics"
)

// Service is the application session. Every exported method runs to
// completion under one lock, so callers observe intake and period changes in
// a single total order.
type Service struct {
	mu sync.Mutex

	// Collaborators
	store      repository.Store
	adapter    *intake.Adapter
	deduper    dedupe.Deduper
	roster     []ranking.Entry
	selfSuffix string
	dedupeSize int
	now        func() time.Time

	// Session state
	profile  *profile.Profile
	tracker  *hydration.Tracker
	sessions map[string]*scanSession
	started  bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets where the profile is persisted.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAdapter sets the intake normalizer.
func WithAdapter(adapter *intake.Adapter) Option {
	return func(s *Service) {
		if adapter != nil {
			s.adapter = adapter
		}
	}
}

// WithRoster replaces the comparison community.
func WithRoster(roster []ranking.Entry) Option {
	return func(s *Service) {
		s.roster = append([]ranking.Entry(nil), roster...)
	}
}

// WithSelfSuffix sets the marker appended to the user's leaderboard name.
func WithSelfSuffix(suffix string) Option {
	return func(s *Service) {
		s.selfSuffix = suffix
	}
}

// WithDedupeSize sets how many intake event ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a Service. Without WithStore the profile lives in memory only.
func New(opts ...Option) *Service {
	s := &Service{
		adapter:    intake.NewAdapter(),
		roster:     ranking.DefaultRoster(),
		selfSuffix: ranking.DefaultSelfSuffix,
		dedupeSize: 10_000,
		now:        time.Now,
		sessions:   make(map[string]*scanSession),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("session")
	}
	if s.store == nil {
		s.store = repository.NewProfileStore(repository.NewMemoryKV())
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start loads the stored profile once. An absent or unreadable profile leaves
// the session waiting for onboarding.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting hydration session...")

	if p, ok := s.store.Load(ctx); ok {
		s.install(p)
		s.logger.Info(ctx, "restored profile",
			logger.String("name", p.Name),
			logger.Int("goalMl", p.GoalMl),
		)
	} else {
		s.logger.Info(ctx, "no stored profile, onboarding required")
	}

	s.started = true
	return nil
}

// Stop closes every open scan session.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	for _, sess := range s.sessions {
		if !sess.closed {
			s.closeSession(sess)
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "hydration session stopped")
}

// Onboarded reports whether a profile is installed.
func (s *Service) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil
}

// Profile returns the installed profile.
func (s *Service) Profile(_ context.Context) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return profile.Profile{}, ErrNotOnboarded
	}
	return *s.profile, nil
}

// Onboard builds a profile from the form inputs, persists it and makes it the
// session profile with an empty period. A failed save is logged and the
// profile is still installed; the next save overwrites the slot.
func (s *Service) Onboard(ctx context.Context, name string, weightLbs float64, level profile.ActivityLevel) (profile.Profile, error) {
	p, err := profile.Build(name, weightLbs, level)
	if err != nil {
		s.logger.Debug(ctx, "onboarding rejected", logger.Error(err))
		return profile.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, p); err != nil {
		s.logger.Warn(ctx, "failed to persist profile", logger.Error(err))
	}

	s.install(p)
	metrics.RecordOnboarding()
	s.logger.Info(ctx, "onboarding complete",
		logger.String("name", p.Name),
		logger.Float64("weightLbs", p.WeightLbs),
		logger.String("activity", string(p.ActivityLevel)),
		logger.Int("goalMl", p.GoalMl),
	)
	return p, nil
}

// install replaces the session profile and starts a fresh tracker for it.
// Callers hold s.mu.
func (s *Service) install(p profile.Profile) {
	s.profile = &p
	s.tracker = hydration.NewTracker(p, hydration.WithObserver(func(st hydration.State) {
		metrics.UpdateProgress(st.CurrentMl, st.Percentage)
	}))
	metrics.UpdateGoal(p.GoalMl)
	metrics.UpdateProgress(0, 0)
}

// Hydration returns the state of the active period.
func (s *Service) Hydration(_ context.Context) (hydration.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return hydration.State{}, ErrNotOnboarded
	}
	return s.tracker.Snapshot(), nil
}

// StartNewPeriod zeroes the active period.
func (s *Service) StartNewPeriod(ctx context.Context) (hydration.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return hydration.State{}, ErrNotOnboarded
	}
	prev := s.tracker.Snapshot()
	st := s.tracker.StartNewPeriod()
	metrics.RecordPeriodStarted()
	s.logger.Info(ctx, "started new period", logger.Int("previousMl", prev.CurrentMl))
	return st, nil
}

// Presets returns the manual intake buttons.
func (s *Service) Presets() []intake.Preset {
	return s.adapter.Presets()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"onboarded":        s.profile != nil,
		"rosterSize":       len(s.roster),
		"dedupeSize":       s.deduper.Size(),
		"scanSessionsOpen": s.openSessions(),
	}
	if s.tracker != nil {
		st := s.tracker.Snapshot()
		stats["goalMl"] = s.tracker.GoalMl()
		stats["currentMl"] = st.CurrentMl
		stats["percentage"] = st.Percentage
	}
	return stats
}
