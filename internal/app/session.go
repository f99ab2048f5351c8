package app

import (
	"context"
	"sync"
	"time"

	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
)

// Session is one user's quiz run: the profile plus how many batches have been
// planned. All methods serialize on an internal mutex, since record-answer is
// a read-modify-write over the profile.
type Session struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	mu             sync.Mutex
	profile        domain.Profile
	batchesPlanned int
}

// SessionState is the serializable snapshot stores persist between requests.
type SessionState struct {
	ID             string         `json:"id"`
	Profile        domain.Profile `json:"profile"`
	BatchesPlanned int            `json:"batchesPlanned"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return newSessionWithClock(id, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return newSessionWithClock(id, now)
}

func newSessionWithClock(id string, now func() time.Time) *Session {
	return &Session{id: id, createdAt: now(), now: now}
}

// RestoreSession rebuilds a session from a persisted snapshot.
func RestoreSession(state SessionState) *Session {
	return &Session{
		id:             state.ID,
		createdAt:      state.CreatedAt,
		now:            time.Now,
		profile:        state.Profile,
		batchesPlanned: state.BatchesPlanned,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State snapshots the session for persistence.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:             s.id,
		Profile:        s.profile.Clone(),
		BatchesPlanned: s.batchesPlanned,
		CreatedAt:      s.createdAt,
	}
}

// nextBatch terminates or plans the next batch. A planned batch advances the
// batch counter; an empty batch reports done without advancing.
func (s *Session) nextBatch(ctx context.Context, eng *engine.Engine) (domain.Batch, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stop, err := eng.ShouldTerminate(ctx, s.profile, s.batchesPlanned)
	if err != nil {
		return domain.Batch{}, false, err
	}
	if stop {
		return domain.Batch{}, true, nil
	}

	batch, err := eng.PlanBatch(ctx, s.profile, s.batchesPlanned)
	if err != nil {
		return domain.Batch{}, false, err
	}
	if len(batch.Questions) == 0 {
		return batch, true, nil
	}
	s.batchesPlanned++
	return batch, false, nil
}

func (s *Session) submitAnswer(eng *engine.Engine, questionID string, optionIDs []string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := eng.RecordAnswer(s.profile, questionID, optionIDs...)
	if err != nil {
		return 0, err
	}
	s.profile = next
	return eng.Confidence(next), nil
}

func (s *Session) results(ctx context.Context, eng *engine.Engine) (domain.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := eng.Candidates(ctx, s.profile)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return domain.Recommendation{
		Products:   products,
		Confidence: eng.Confidence(s.profile),
	}, nil
}
