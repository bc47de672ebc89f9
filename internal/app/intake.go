package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/intake"
	"github.com/okian/swigup/internal/domain/model"
	"github.com/okian/swigup/pkg/logger"
	"github.com/okian/swigup/pkg/metrics"
)

const (
	// closedSessionTTL is how long a closed scan session is remembered, so late
	// deliveries report it as closed rather than unknown.
	closedSessionTTL = 10 * time.Minute
	// openSessionTTL closes sessions that never receive a decode.
	openSessionTTL = 5 * time.Minute
	// maxOpenSessions bounds concurrently open sessions; the oldest is closed
	// to make room.
	maxOpenSessions = 64
)

type scanSession struct {
	id       string
	openedAt time.Time
	closedAt time.Time
	closed   bool
}

// LogManual applies a manual intake of amountMl. A non-empty eventID makes the
// call idempotent: a repeated id is acknowledged without re-applying.
func (s *Service) LogManual(ctx context.Context, eventID string, amountMl int) (model.IntakeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(ctx, eventID, intake.Manual(amountMl))
}

// LogPreset applies the manual preset named by key.
func (s *Service) LogPreset(ctx context.Context, eventID, key string) (model.IntakeResult, error) {
	p, ok := s.adapter.Preset(key)
	if !ok {
		metrics.RecordIntakeRejected("unknown_preset")
		return model.IntakeResult{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(ctx, eventID, intake.Manual(p.AmountMl))
}

// Scan applies one decoded scan outside of any session.
func (s *Service) Scan(ctx context.Context, eventID, text string) (model.IntakeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(ctx, eventID, intake.Scan(text))
}

// OpenScanSession starts accepting one decode and returns the session id.
func (s *Service) OpenScanSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return "", ErrNotOnboarded
	}

	now := s.now()
	s.pruneSessions(now)
	if s.openSessions() >= maxOpenSessions {
		if oldest := s.oldestOpenSession(); oldest != nil {
			s.closeSession(oldest)
			s.logger.Debug(ctx, "evicted oldest scan session", logger.String("sessionID", oldest.id))
		}
	}

	sess := &scanSession{id: uuid.NewString(), openedAt: now}
	s.sessions[sess.id] = sess
	metrics.UpdateScanSessionsOpen(s.openSessions())
	s.logger.Debug(ctx, "scan session opened", logger.String("sessionID", sess.id))
	return sess.id, nil
}

// DeliverScan hands a decoded text to an open session. The session closes
// once the intake is applied; deliveries after close never reach the adapter.
func (s *Service) DeliverScan(ctx context.Context, sessionID, eventID, text string) (model.IntakeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.IntakeResult{}, fmt.Errorf("%w: %s", ErrScanSessionNotFound, sessionID)
	}
	if !sess.closed && s.now().Sub(sess.openedAt) > openSessionTTL {
		s.closeSession(sess)
	}
	if sess.closed {
		s.logger.Debug(ctx, "dropped decode for closed scan session", logger.String("sessionID", sessionID))
		return model.IntakeResult{}, fmt.Errorf("%w: %s", ErrScanSessionClosed, sessionID)
	}

	res, err := s.apply(ctx, eventID, intake.Scan(text))
	if err != nil {
		return res, err
	}
	s.closeSession(sess)
	return res, nil
}

// CloseScanSession stops a session from accepting decodes. Closing twice is
// harmless.
func (s *Service) CloseScanSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrScanSessionNotFound, sessionID)
	}
	if !sess.closed {
		s.closeSession(sess)
		s.logger.Debug(ctx, "scan session closed", logger.String("sessionID", sessionID))
	}
	return nil
}

// apply normalizes raw and folds it into the tracker. Callers hold s.mu.
func (s *Service) apply(ctx context.Context, eventID string, raw intake.Payload) (model.IntakeResult, error) {
	if s.tracker == nil {
		return model.IntakeResult{}, ErrNotOnboarded
	}

	at := s.now()
	if eventID != "" && s.deduper.SeenAndRecord(ctx, eventID) {
		metrics.RecordIntakeDuplicate()
		s.logger.Debug(ctx, "duplicate intake event, skipping", logger.String("eventID", eventID))
		return model.IntakeResult{
			EventID:   eventID,
			Duplicate: true,
			State:     s.tracker.Snapshot(),
			At:        at,
		}, nil
	}

	ev := s.adapter.Normalize(raw)
	st, err := s.tracker.AddIntake(ev.AmountMl)
	if err != nil {
		if eventID != "" {
			s.deduper.Unrecord(ctx, eventID)
		}
		reason := "invalid_amount"
		if errors.Is(err, hydration.ErrInvariantViolation) {
			reason = "invariant_violation"
			s.logger.Error(ctx, "tracker invariant violated", logger.Error(err))
		}
		metrics.RecordIntakeRejected(reason)
		return model.IntakeResult{}, err
	}

	metrics.RecordIntake(string(ev.Source), ev.AmountMl)
	if ev.Fallback != intake.FallbackNone {
		metrics.RecordScanFallback(string(ev.Fallback))
	}
	s.logger.Debug(ctx, "intake applied",
		logger.String("source", string(ev.Source)),
		logger.Int("amountMl", ev.AmountMl),
		logger.String("fallback", string(ev.Fallback)),
		logger.Int("currentMl", st.CurrentMl),
		logger.Float64("percentage", st.Percentage),
	)

	return model.IntakeResult{
		EventID:  eventID,
		AmountMl: ev.AmountMl,
		Source:   ev.Source,
		Fallback: ev.Fallback,
		State:    st,
		At:       at,
	}, nil
}

func (s *Service) closeSession(sess *scanSession) {
	sess.closed = true
	sess.closedAt = s.now()
	metrics.UpdateScanSessionsOpen(s.openSessions())
}

// pruneSessions closes sessions left open past openSessionTTL and forgets
// sessions closed longer than closedSessionTTL.
func (s *Service) pruneSessions(now time.Time) {
	for id, sess := range s.sessions {
		switch {
		case !sess.closed && now.Sub(sess.openedAt) > openSessionTTL:
			s.closeSession(sess)
		case sess.closed && now.Sub(sess.closedAt) > closedSessionTTL:
			delete(s.sessions, id)
		}
	}
}

func (s *Service) oldestOpenSession() *scanSession {
	var oldest *scanSession
	for _, sess := range s.sessions {
		if sess.closed {
			continue
		}
		if oldest == nil || sess.openedAt.Before(oldest.openedAt) {
			oldest = sess
		}
	}
	return oldest
}

func (s *Service) openSessions() int {
	n := 0
	for _, sess := range s.sessions {
		if !sess.closed {
			n++
		}
	}
	return n
}
