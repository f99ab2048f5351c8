package engine

import (
	"fmt"
	"sort"

	"adapter-quiz-service/internal/domain"
)

// RecordAnswer validates and applies one answer, returning the updated
// profile. The input profile is never mutated; on error it is returned
// unchanged. Re-answering a question overwrites the previous selection in
// place, keeping the original answer order. Follow-up hints accumulate
// without deduplication, matching how repeated answers behaved historically.
func (e *Engine) RecordAnswer(profile domain.Profile, questionID string, optionIDs ...string) (domain.Profile, error) {
	set := e.questions.Snapshot()
	question, ok := set.Question(questionID)
	if !ok {
		return profile, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}

	if len(optionIDs) == 0 {
		return profile, fmt.Errorf("%w: no option selected for %s", domain.ErrInvalidAnswer, questionID)
	}
	if question.Kind == domain.SingleChoice && len(optionIDs) > 1 {
		return profile, fmt.Errorf("%w: %s accepts a single option", domain.ErrInvalidAnswer, questionID)
	}

	chosen := make([]domain.Option, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		option, ok := question.OptionByID(optionID)
		if !ok {
			return profile, fmt.Errorf("%w: option %s not in %s", domain.ErrInvalidAnswer, optionID, questionID)
		}
		chosen = append(chosen, option)
	}

	next := profile.Clone()

	replaced := false
	for i := range next.Answers {
		if next.Answers[i].QuestionID == questionID {
			next.Answers[i].OptionIDs = append([]string(nil), optionIDs...)
			replaced = true
			break
		}
	}
	if !replaced {
		next.Answers = append(next.Answers, domain.Answer{
			QuestionID: questionID,
			OptionIDs:  append([]string(nil), optionIDs...),
		})
	}

	for _, option := range chosen {
		if option.FollowUp != "" {
			next.FollowUps = append(next.FollowUps, option.FollowUp)
		}
	}

	next.Preferences = derivePreferences(next)
	return next, nil
}

// derivePreferences recomputes derived preferences from the whole answer
// history rather than patching them per answer.
func derivePreferences(profile domain.Profile) domain.Preferences {
	var prefs domain.Preferences
	if chosen, ok := profile.SingleAnswer(questionCertification); ok && chosen == optionCertificationRequired {
		prefs.QualityFocused = true
	}
	if chosen, ok := profile.SingleAnswer(questionBudget); ok {
		prefs.BudgetCategory = chosen
	}
	if chosen, ok := profile.SingleAnswer(questionUsage); ok {
		prefs.UseCase = chosen
	}
	return prefs
}

// ProfileTags collects the preference tags of every chosen option, sorted and
// deduplicated. Recomputed on demand from the answer history.
func (e *Engine) ProfileTags(profile domain.Profile) []string {
	set := e.questions.Snapshot()
	seen := make(map[string]bool)
	for _, answer := range profile.Answers {
		question, ok := set.Question(answer.QuestionID)
		if !ok {
			continue
		}
		for _, optionID := range answer.OptionIDs {
			option, ok := question.OptionByID(optionID)
			if !ok {
				continue
			}
			for _, tag := range option.Tags {
				seen[tag] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
