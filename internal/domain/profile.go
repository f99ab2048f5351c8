package domain

// Answer records the option(s) chosen for one question. Answers keep their
// position in the profile when re-answered, so slice order is answer order.
type Answer struct {
	QuestionID string   `json:"questionId"`
	OptionIDs  []string `json:"optionIds"`
}

// Preferences are derived from the full answer history after every recorded
// answer; they are never patched incrementally.
type Preferences struct {
	QualityFocused bool   `json:"qualityFocused,omitempty"`
	BudgetCategory string `json:"budgetCategory,omitempty"`
	UseCase        string `json:"useCase,omitempty"`
}

// Profile accumulates a session's answers, follow-up hints, and derived
// preferences. It is owned by the calling session and safe to serialize as
// an opaque JSON blob between requests.
type Profile struct {
	Answers     []Answer    `json:"answers,omitempty"`
	FollowUps   []string    `json:"followUps,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// Answer returns the recorded option ids for a question, if answered.
func (p Profile) Answer(questionID string) ([]string, bool) {
	for _, a := range p.Answers {
		if a.QuestionID == questionID {
			return a.OptionIDs, true
		}
	}
	return nil, false
}

// Answered reports whether the question has been answered.
func (p Profile) Answered(questionID string) bool {
	_, ok := p.Answer(questionID)
	return ok
}

// SingleAnswer returns the first recorded option id for a question, which is
// the only one for single-choice questions.
func (p Profile) SingleAnswer(questionID string) (string, bool) {
	ids, ok := p.Answer(questionID)
	if !ok || len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// HasFollowUp reports whether a question id was flagged by a prior answer.
func (p Profile) HasFollowUp(questionID string) bool {
	for _, id := range p.FollowUps {
		if id == questionID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so record-answer can hand back a fresh value
// without aliasing the caller's slices.
func (p Profile) Clone() Profile {
	out := Profile{Preferences: p.Preferences}
	if p.Answers != nil {
		out.Answers = make([]Answer, len(p.Answers))
		for i, a := range p.Answers {
			out.Answers[i] = Answer{
				QuestionID: a.QuestionID,
				OptionIDs:  append([]string(nil), a.OptionIDs...),
			}
		}
	}
	if p.FollowUps != nil {
		out.FollowUps = append([]string(nil), p.FollowUps...)
	}
	return out
}
