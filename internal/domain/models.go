package domain

import "time"

// QuestionType distinguishes auto-gradable from manually graded questions.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTypedAnswer    QuestionType = "typed-answer"
)

// Status tracks the grading lifecycle of a submission.
type Status string

const (
	// StatusAutoGraded means every answer was scored mechanically at submission time.
	StatusAutoGraded Status = "auto-graded"
	// StatusPendingReview means at least one typed answer awaits instructor judgment.
	StatusPendingReview Status = "pending-review"
	// StatusFullyGraded is set once an instructor applies a grading pass.
	StatusFullyGraded Status = "fully-graded"
)

// QuizQuestion is one question in a quiz. Multiple-choice questions carry
// exactly four options plus the index of the correct one; typed-answer
// questions carry neither.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer int          `json:"correctAnswer,omitempty"`
}

// Quiz is an ordered set of questions presented to students as one unit.
// Question order is canonical: it aligns a submission's answers back to
// their questions.
type Quiz struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Questions   []QuizQuestion `json:"questions"`
}

// QuizAnswer records one answer within a submission. QuestionID is the stable
// join key back to the quiz question; Question keeps the prompt text as a
// display snapshot so dashboards survive later edits to the quiz.
// IsCorrect is tri-state: nil means "not yet judged", which is distinct from
// "judged incorrect".
type QuizAnswer struct {
	QuestionID      string       `json:"questionId"`
	Question        string       `json:"question"`
	QuestionType    QuestionType `json:"questionType"`
	StudentAnswer   string       `json:"studentAnswer"`
	CorrectAnswer   *int         `json:"correctAnswer,omitempty"`
	IsCorrect       *bool        `json:"isCorrect"`
	TeacherFeedback string       `json:"teacherFeedback,omitempty"`
}

// QuizSubmission is one student's recorded answers and derived score for one
// quiz. It is keyed by (quiz, student); writing a second submission for the
// same student overwrites the first. TotalQuestions snapshots the question
// count at submission time and is never reconciled against the live quiz.
type QuizSubmission struct {
	StudentID      string       `json:"studentId"`
	StudentName    string       `json:"studentName"`
	Answers        []QuizAnswer `json:"answers"`
	Score          float64      `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Status         Status       `json:"status"`
	SubmittedAt    time.Time    `json:"submittedAt"`
}

// Judgment is an instructor's verdict on a single typed answer.
type Judgment struct {
	IsCorrect       bool   `json:"isCorrect"`
	TeacherFeedback string `json:"teacherFeedback"`
}
