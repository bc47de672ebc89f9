package service

import (
	"context"

	"github.com/okian/swigup/internal/domain/ranking"
	"github.com/okian/swigup/internal/domain/types"
	"github.com/okian/swigup/pkg/logger"
	"github.com/okian/swigup/pkg/metrics"
)

// Leaderboard ranks the user against the roster using the live period.
func (s *Service) Leaderboard(ctx context.Context) (types.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.build(ctx)
	if err != nil {
		return types.Leaderboard{}, err
	}
	return types.NewLeaderboard(board, s.now().UTC()), nil
}

// SelfRank returns the user's own leaderboard row.
func (s *Service) SelfRank(ctx context.Context) (types.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.build(ctx)
	if err != nil {
		return types.Entry{}, err
	}
	self, _ := ranking.Self(board)
	return types.FromStanding(self), nil
}

// build snapshots the profile and tracker into an ordered board. Callers hold s.mu.
func (s *Service) build(ctx context.Context) ([]ranking.Standing, error) {
	if s.profile == nil {
		return nil, ErrNotOnboarded
	}

	board, err := ranking.BuildLeaderboard(*s.profile, s.tracker.Snapshot(), s.roster,
		ranking.WithSelfSuffix(s.selfSuffix))
	if err != nil {
		metrics.RecordLeaderboardError()
		s.logger.Error(ctx, "leaderboard build aborted", logger.Error(err))
		return nil, err
	}

	metrics.RecordLeaderboardBuild(len(board))
	return board, nil
}
