package app

import (
	"strconv"
	"strings"
	"time"

	"quiz-grading-service/internal/domain"
)

// BuildSubmission turns raw student responses into a graded submission
// document. Responses are keyed by question index in quiz order. Multiple-
// choice answers are marked immediately; typed answers stay unjudged until an
// instructor grades them via Reconcile.
func BuildSubmission(quiz domain.Quiz, studentID, studentName string, responses map[int]string, now time.Time) (domain.QuizSubmission, error) {
	total := len(quiz.Questions)
	if total == 0 {
		return domain.QuizSubmission{}, domain.NewValidationError(-1, "quiz %q has no questions", quiz.ID)
	}

	answers := make([]domain.QuizAnswer, 0, total)
	correct := 0
	needsReview := false

	for i, q := range quiz.Questions {
		raw, ok := responses[i]
		answer := domain.QuizAnswer{
			QuestionID:   q.ID,
			Question:     q.Prompt,
			QuestionType: q.Type,
		}

		switch q.Type {
		case domain.QuestionMultipleChoice:
			if !ok {
				return domain.QuizSubmission{}, domain.NewValidationError(i, "response is required")
			}
			idx, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return domain.QuizSubmission{}, domain.NewValidationError(i, "response %q is not an option index", raw)
			}
			if idx < 0 || idx >= len(q.Options) {
				return domain.QuizSubmission{}, domain.NewValidationError(i, "option index %d out of range", idx)
			}
			key := q.CorrectAnswer
			isCorrect := idx == key
			if isCorrect {
				correct++
			}
			answer.StudentAnswer = strconv.Itoa(idx)
			answer.CorrectAnswer = &key
			answer.IsCorrect = &isCorrect

		case domain.QuestionTypedAnswer:
			if !ok || strings.TrimSpace(raw) == "" {
				return domain.QuizSubmission{}, domain.NewValidationError(i, "response is required")
			}
			answer.StudentAnswer = raw
			needsReview = true

		default:
			return domain.QuizSubmission{}, domain.NewValidationError(i, "unknown question type %q", q.Type)
		}

		answers = append(answers, answer)
	}

	status := domain.StatusAutoGraded
	if needsReview {
		status = domain.StatusPendingReview
	}

	return domain.QuizSubmission{
		StudentID:      studentID,
		StudentName:    studentName,
		Answers:        answers,
		Score:          percentage(correct, total),
		TotalQuestions: total,
		Status:         status,
		SubmittedAt:    now,
	}, nil
}

// Reconcile merges instructor judgments into a submission and recomputes the
// score from scratch. Judgments are keyed by answer index and may only target
// typed answers. The status becomes fully-graded on every call, whether or
// not all typed answers have been judged yet; callers wanting a stricter
// policy should gate on FullyJudged.
func Reconcile(sub domain.QuizSubmission, totalQuestions int, judgments map[int]domain.Judgment) (domain.QuizSubmission, error) {
	if totalQuestions <= 0 {
		return domain.QuizSubmission{}, domain.NewValidationError(-1, "submission has no questions")
	}
	for i := range judgments {
		if i < 0 || i >= len(sub.Answers) {
			return domain.QuizSubmission{}, domain.NewValidationError(i, "no answer at this index")
		}
		if sub.Answers[i].QuestionType != domain.QuestionTypedAnswer {
			return domain.QuizSubmission{}, domain.NewValidationError(i, "only typed answers accept manual judgments")
		}
	}

	answers := make([]domain.QuizAnswer, len(sub.Answers))
	copy(answers, sub.Answers)
	for i, j := range judgments {
		verdict := j.IsCorrect
		answers[i].IsCorrect = &verdict
		answers[i].TeacherFeedback = j.TeacherFeedback
	}

	correct := 0
	for _, a := range answers {
		if a.IsCorrect != nil && *a.IsCorrect {
			correct++
		}
	}

	sub.Answers = answers
	sub.Score = percentage(correct, totalQuestions)
	sub.Status = domain.StatusFullyGraded
	return sub, nil
}

// FullyJudged reports whether every typed answer carries a verdict. Reconcile
// does not require this before marking a submission fully-graded; the
// predicate exists so a stricter grading policy can check it explicitly.
func FullyJudged(sub domain.QuizSubmission) bool {
	for _, a := range sub.Answers {
		if a.QuestionType == domain.QuestionTypedAnswer && a.IsCorrect == nil {
			return false
		}
	}
	return true
}

// AverageScore is the arithmetic mean of submission scores. An empty slice
// yields 0; pending-review submissions contribute their auto-only score as-is.
func AverageScore(subs []domain.QuizSubmission) float64 {
	if len(subs) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range subs {
		sum += s.Score
	}
	return sum / float64(len(subs))
}

func percentage(correct, total int) float64 {
	return 100 * float64(correct) / float64(total)
}
