package domain

// QuestionKind distinguishes how many options may be selected at once.
type QuestionKind string

const (
	SingleChoice QuestionKind = "single"
	MultiChoice  QuestionKind = "multi"
)

// Stage names a phase of the quiz; each stage carries its own question pool
// and base weights.
type Stage string

const (
	StageInitial      Stage = "initial"
	StageRefinement   Stage = "refinement"
	StageFinalization Stage = "finalization"
)

// Condition constrains a single product attribute. Exactly one of the match
// forms is normally set: exact value, set membership, or an inclusive numeric
// range (either bound may be absent).
type Condition struct {
	Equals any      `json:"equals,omitempty"`
	OneOf  []any    `json:"oneOf,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// FilterPredicate maps product attribute names to conditions. All entries
// must hold for a product to match; an empty predicate matches every product.
type FilterPredicate map[string]Condition

// Option is one possible answer to a question.
type Option struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Filter   FilterPredicate `json:"filter,omitempty"`
	FollowUp string          `json:"followUp,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
}

// Question is an immutable quiz question definition.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Kind     QuestionKind `json:"kind"`
	Category string       `json:"category,omitempty"`
	Options  []Option     `json:"options"`
}

// OptionByID returns the option with the given id, if present.
func (q Question) OptionByID(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Product is a catalog item. Attributes holds the values filter predicates
// refer to (strings, numbers, bools), e.g. manufacturer, port_type_name,
// price, max_wattage, is_certified.
type Product struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
}

// StageEntry assigns a base weight in (0,1] to a question within a stage.
// Slice order is the tie-break order during planning, so it is significant.
type StageEntry struct {
	QuestionID string  `json:"questionId"`
	Weight     float64 `json:"weight"`
}

// Progress reports how far through the quiz a session is.
type Progress struct {
	CurrentBatch      int `json:"currentBatch"`
	TotalBatches      int `json:"totalBatches"`
	QuestionsAnswered int `json:"questionsAnswered"`
	MaxQuestions      int `json:"maxQuestions"`
}

// Batch is one planned round of questions. An empty Questions slice means
// there is nothing left to ask and callers should treat the quiz as done.
type Batch struct {
	Questions      []Question `json:"questions"`
	Stage          Stage      `json:"stage"`
	CandidateCount int        `json:"candidateCount"`
	Progress       Progress   `json:"progress"`
}

// Recommendation is the final narrowing result for a session.
type Recommendation struct {
	Products   []Product `json:"products"`
	Confidence float64   `json:"confidence"`
}
