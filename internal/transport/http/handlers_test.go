package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/domain"
	"quiz-grading-service/internal/infra/memory"
)

func TestSubmitAndGradeOverHTTP(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var sub domain.QuizSubmission
	status := postJSON(t, server.URL+"/quizzes/quiz-1/submissions", map[string]any{
		"studentId":   "s1",
		"studentName": "Alice",
		"answers":     map[string]string{"0": "1", "1": "because of the axioms"},
	}, &sub)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if sub.Status != domain.StatusPendingReview || sub.Score != 50 {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	var graded domain.QuizSubmission
	status = postJSON(t, server.URL+"/quizzes/quiz-1/submissions/s1/grades", map[string]any{
		"items": map[string]any{
			"1": map[string]any{"isCorrect": true, "teacherFeedback": "good"},
		},
	}, &graded)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if graded.Status != domain.StatusFullyGraded || graded.Score != 100 {
		t.Fatalf("unexpected graded submission: %+v", graded)
	}

	resp, err := http.Get(server.URL + "/quizzes/quiz-1/submissions/s1")
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	defer resp.Body.Close()
	var stored domain.QuizSubmission
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.Answers[1].TeacherFeedback != "good" {
		t.Fatalf("expected persisted feedback, got %+v", stored.Answers[1])
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var errResp errorResponse
	status := postJSON(t, server.URL+"/quizzes/quiz-1/submissions", map[string]any{
		"studentId":   "s1",
		"studentName": "Alice",
		"answers":     map[string]string{"0": "not-a-number", "1": "text"},
	}, &errResp)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if errResp.Error == "" {
		t.Fatalf("expected error message")
	}
}

func TestGradeMissingSubmissionReturns404(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var errResp errorResponse
	status := postJSON(t, server.URL+"/quizzes/quiz-1/submissions/ghost/grades", map[string]any{
		"items": map[string]any{"1": map[string]any{"isCorrect": true}},
	}, &errResp)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSubmitUnknownQuizReturns404(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var errResp errorResponse
	status := postJSON(t, server.URL+"/quizzes/quiz-404/submissions", map[string]any{
		"studentId":   "s1",
		"studentName": "Alice",
		"answers":     map[string]string{"0": "1"},
	}, &errResp)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestStatsEndpoint(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/quizzes/quiz-1/stats")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	defer resp.Body.Close()

	var stats app.QuizStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Submissions != 0 || stats.AverageScore != 0 {
		t.Fatalf("expected zero stats for fresh quiz, got %+v", stats)
	}
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	submissions := memory.NewSubmissionStore()
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(sampleQuizzes()), time.Minute)
	service := app.NewGradingService(submissions, quizzes)
	return httptest.NewServer(NewRouter(service))
}

func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:    "quiz-1",
			Title: "Arithmetic warm-up",
			Questions: []domain.QuizQuestion{
				{
					ID:            "q1",
					Type:          domain.QuestionMultipleChoice,
					Prompt:        "What is 2 + 2?",
					Options:       []string{"3", "4", "5", "6"},
					CorrectAnswer: 1,
				},
				{
					ID:     "q2",
					Type:   domain.QuestionTypedAnswer,
					Prompt: "Explain why 2 + 2 = 4.",
				},
			},
		},
	}
}
