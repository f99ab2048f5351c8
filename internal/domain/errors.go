package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionNotFound indicates a submitted question id is not in the catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidAnswer indicates the option id does not exist under the question,
	// or the selection shape does not fit the question kind. The profile is
	// left unchanged.
	ErrInvalidAnswer = errors.New("invalid answer for question")
	// ErrCatalogUnavailable wraps transient product catalog failures. It must
	// never be collapsed into "no candidates": callers retry, they do not
	// terminate the quiz.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)
