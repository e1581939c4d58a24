package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the quiz definition could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSubmissionNotFound indicates no submission exists for the (quiz, student) pair.
	ErrSubmissionNotFound = errors.New("submission not found")
)

// ValidationError reports a malformed or missing response for one question.
// QuestionIndex is -1 when the problem is not tied to a single question.
type ValidationError struct {
	QuestionIndex int
	Reason        string
}

func (e *ValidationError) Error() string {
	if e.QuestionIndex < 0 {
		return "invalid submission: " + e.Reason
	}
	return fmt.Sprintf("invalid answer for question %d: %s", e.QuestionIndex, e.Reason)
}

// NewValidationError builds a ValidationError for the question at index.
func NewValidationError(index int, format string, args ...any) *ValidationError {
	return &ValidationError{QuestionIndex: index, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
