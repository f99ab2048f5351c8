package app

import (
	"context"
	"log"

	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sessionID string) *Session
	Get(ctx context.Context, sessionID string) (*Session, bool)
	// Persist snapshots the session so another request (or instance) can pick
	// it up. In-memory stores may make this a no-op.
	Persist(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string)
}

// QuizService contains the quiz use cases around the recommendation engine.
type QuizService struct {
	sessions SessionRepository
	engine   *engine.Engine
}

func NewQuizService(sessions SessionRepository, eng *engine.Engine) *QuizService {
	return &QuizService{sessions: sessions, engine: eng}
}

// NextBatch plans the next round of questions for the session, creating the
// session on first use. done=true means the quiz is over and Results carries
// the final narrowing.
func (s *QuizService) NextBatch(ctx context.Context, sessionID string) (domain.Batch, bool, error) {
	session := s.sessions.GetOrCreate(ctx, sessionID)
	batch, done, err := session.nextBatch(ctx, s.engine)
	if err != nil {
		return domain.Batch{}, false, err
	}
	s.persist(ctx, session)
	return batch, done, nil
}

// SubmitAnswer records one answer for the session and returns the updated
// confidence. Invalid answers leave the session untouched.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, questionID string, optionIDs ...string) (float64, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return 0, domain.ErrSessionNotFound
	}
	confidence, err := session.submitAnswer(s.engine, questionID, optionIDs)
	if err != nil {
		return 0, err
	}
	s.persist(ctx, session)
	return confidence, nil
}

// Results returns the products still matching the session's answers plus the
// current confidence.
func (s *QuizService) Results(ctx context.Context, sessionID string) (domain.Recommendation, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return domain.Recommendation{}, domain.ErrSessionNotFound
	}
	return session.results(ctx, s.engine)
}

// End drops the session; the profile is discarded.
func (s *QuizService) End(ctx context.Context, sessionID string) {
	s.sessions.Delete(ctx, sessionID)
}

func (s *QuizService) persist(ctx context.Context, session *Session) {
	if err := s.sessions.Persist(ctx, session); err != nil {
		// Persistence is best-effort durability, not correctness: the live
		// session keeps serving this instance.
		log.Printf("persist session %s: %v", session.ID(), err)
	}
}
