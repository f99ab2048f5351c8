package redis

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"adapter-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-backed implementation of app.SessionRepository.
// Live sessions stay in a local map so in-process calls never pay a network
// round trip; Redis holds the serialized snapshots (opaque JSON blobs with a
// TTL) so a restarted or sibling instance can resume a session on miss.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(ctx context.Context, sessionID string) *app.Session {
	if session, ok := s.Get(ctx, sessionID); ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := app.NewSession(sessionID)
	s.sessions[sessionID] = session
	return session
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return session, true
	}

	restored, ok := s.load(ctx, sessionID)
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have restored it first; keep the existing one.
	if session, ok := s.sessions[sessionID]; ok {
		return session, true
	}
	s.sessions[sessionID] = restored
	return restored, true
}

func (s *SessionStore) Persist(ctx context.Context, session *app.Session) error {
	data, err := json.Marshal(session.State())
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.ID()), data, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	_ = s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) load(ctx context.Context, sessionID string) (*app.Session, bool) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis session load %s: %v", sessionID, err)
		}
		return nil, false
	}
	var state app.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("redis session decode %s: %v", sessionID, err)
		return nil, false
	}
	return app.RestoreSession(state), true
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
