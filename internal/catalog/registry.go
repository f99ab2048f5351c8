// Package catalog holds the question catalog: immutable question definitions
// plus the per-stage weight tables the planner ranks against.
package catalog

import (
	"sync/atomic"

	"adapter-quiz-service/internal/domain"
)

// Set is one complete, immutable catalog revision. Questions are in canonical
// order (the planner's fallback order); Stages keeps the listed order per
// stage as the deterministic tie-break order.
type Set struct {
	Questions []domain.Question                    `json:"questions"`
	Stages    map[domain.Stage][]domain.StageEntry `json:"stages"`

	byID map[string]domain.Question
}

// NewSet builds the lookup index; the inputs must not be mutated afterwards.
func NewSet(questions []domain.Question, stages map[domain.Stage][]domain.StageEntry) *Set {
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Set{Questions: questions, Stages: stages, byID: byID}
}

// Question looks a question up by id.
func (s *Set) Question(id string) (domain.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// StageEntries returns the weight table for a stage in its listed order.
func (s *Set) StageEntries(stage domain.Stage) []domain.StageEntry {
	return s.Stages[stage]
}

// Registry hands out catalog snapshots. Each planning call reads one snapshot
// atomically, so a concurrent Replace never produces a half-updated view.
type Registry struct {
	current atomic.Pointer[Set]
}

// NewRegistry starts with the given catalog set.
func NewRegistry(set *Set) *Registry {
	r := &Registry{}
	r.current.Store(set)
	return r
}

// Snapshot returns the current catalog revision.
func (r *Registry) Snapshot() *Set {
	return r.current.Load()
}

// Replace swaps in a new catalog revision (hot reload).
func (r *Registry) Replace(set *Set) {
	r.current.Store(set)
}
