package memory

import (
	"context"
	"errors"
	"testing"

	"quiz-grading-service/internal/domain"
)

func TestSubmissionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()

	if _, err := store.Get(ctx, "quiz-1", "s1"); !errors.Is(err, domain.ErrSubmissionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	first := domain.QuizSubmission{StudentID: "s1", StudentName: "Alice", Score: 50, Status: domain.StatusPendingReview}
	if err := store.Put(ctx, "quiz-1", first); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "quiz-1", "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score != 50 || got.StudentName != "Alice" {
		t.Fatalf("unexpected submission: %+v", got)
	}

	// A second Put for the same student overwrites; last write wins.
	second := first
	second.Score = 100
	if err := store.Put(ctx, "quiz-1", second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	subs, err := store.ListByQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 || subs[0].Score != 100 {
		t.Fatalf("expected single overwritten submission, got %+v", subs)
	}
}

func TestSubmissionStoreUpdateRequiresExisting(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()

	missing := domain.QuizSubmission{StudentID: "s1"}
	if err := store.Update(ctx, "quiz-1", missing); !errors.Is(err, domain.ErrSubmissionNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := store.Put(ctx, "quiz-1", missing); err != nil {
		t.Fatalf("put: %v", err)
	}
	updated := missing
	updated.Status = domain.StatusFullyGraded
	if err := store.Update(ctx, "quiz-1", updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := store.Get(ctx, "quiz-1", "s1")
	if got.Status != domain.StatusFullyGraded {
		t.Fatalf("expected updated status, got %s", got.Status)
	}
}
