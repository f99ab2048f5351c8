package engine

import (
	"context"
	"log"
	"sort"

	"adapter-quiz-service/internal/domain"
)

// Context-weight multipliers applied on top of a question's stage base weight.
const (
	followUpBoost = 1.5
	qualityBoost  = 1.3
)

// qualitySensitive lists the questions boosted for quality-focused profiles.
var qualitySensitive = map[string]bool{
	questionCertification: true,
	"power_requirements":  true,
	"warranty_importance": true,
}

// StageFor maps a batch index to its stage: the first batch probes broadly,
// the second refines, everything after that finalizes.
func StageFor(batchIndex int) domain.Stage {
	switch {
	case batchIndex <= 0:
		return domain.StageInitial
	case batchIndex == 1:
		return domain.StageRefinement
	default:
		return domain.StageFinalization
	}
}

// PlanBatch selects the next batch of questions for the profile: stage
// questions ranked by baseWeight x informationGain x contextWeight, then
// fallback slots filled in canonical catalog order. An empty question catalog
// yields an empty batch, which callers read as an implicit stop.
func (e *Engine) PlanBatch(ctx context.Context, profile domain.Profile, batchIndex int) (domain.Batch, error) {
	set := e.questions.Snapshot()
	stage := StageFor(batchIndex)

	candidates, err := e.products.Query(ctx, profilePredicates(set, profile), e.cfg.CandidateLimit)
	if err != nil {
		return domain.Batch{}, err
	}

	type scored struct {
		question domain.Question
		priority float64
	}
	var ranked []scored
	for _, entry := range set.StageEntries(stage) {
		if profile.Answered(entry.QuestionID) {
			continue
		}
		question, ok := set.Question(entry.QuestionID)
		if !ok {
			log.Printf("planner: stage %s references unknown question %q, skipping", stage, entry.QuestionID)
			continue
		}

		contextWeight := 1.0
		if profile.HasFollowUp(question.ID) {
			contextWeight *= followUpBoost
		}
		if profile.Preferences.QualityFocused && qualitySensitive[question.ID] {
			contextWeight *= qualityBoost
		}
		ranked = append(ranked, scored{
			question: question,
			priority: entry.Weight * InformationGain(question, candidates) * contextWeight,
		})
	}

	// Stable sort keeps stage-table order on equal priority.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].priority > ranked[j].priority
	})

	questions := make([]domain.Question, 0, e.cfg.BatchSize)
	selected := make(map[string]bool, e.cfg.BatchSize)
	for _, s := range ranked {
		if len(questions) == e.cfg.BatchSize {
			break
		}
		questions = append(questions, s.question)
		selected[s.question.ID] = true
	}

	// Fallback: top up from the canonical catalog order with anything still
	// unanswered. The batch may stay short if the catalog is exhausted.
	for _, question := range set.Questions {
		if len(questions) == e.cfg.BatchSize {
			break
		}
		if selected[question.ID] || profile.Answered(question.ID) {
			continue
		}
		questions = append(questions, question)
		selected[question.ID] = true
	}

	return domain.Batch{
		Questions:      questions,
		Stage:          stage,
		CandidateCount: len(candidates),
		Progress: domain.Progress{
			CurrentBatch:      batchIndex + 1,
			TotalBatches:      e.cfg.TotalBatches,
			QuestionsAnswered: len(profile.Answers),
			MaxQuestions:      e.cfg.TotalBatches * e.cfg.BatchSize,
		},
	}, nil
}
