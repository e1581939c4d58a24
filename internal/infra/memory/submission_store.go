package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-grading-service/internal/domain"
)

// SubmissionStore is an in-memory implementation of app.SubmissionStore with
// document-store semantics: Put overwrites, Update requires the document to
// exist already.
type SubmissionStore struct {
	mu     sync.RWMutex
	byQuiz map[string]map[string]domain.QuizSubmission
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		byQuiz: make(map[string]map[string]domain.QuizSubmission),
	}
}

func (s *SubmissionStore) Put(_ context.Context, quizID string, sub domain.QuizSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, ok := s.byQuiz[quizID]
	if !ok {
		subs = make(map[string]domain.QuizSubmission)
		s.byQuiz[quizID] = subs
	}
	subs[sub.StudentID] = sub
	return nil
}

func (s *SubmissionStore) Get(_ context.Context, quizID, studentID string) (domain.QuizSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.byQuiz[quizID][studentID]
	if !ok {
		return domain.QuizSubmission{}, domain.ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *SubmissionStore) Update(_ context.Context, quizID string, sub domain.QuizSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, ok := s.byQuiz[quizID]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	if _, ok := subs[sub.StudentID]; !ok {
		return domain.ErrSubmissionNotFound
	}
	subs[sub.StudentID] = sub
	return nil
}

func (s *SubmissionStore) ListByQuiz(_ context.Context, quizID string) ([]domain.QuizSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := make([]domain.QuizSubmission, 0, len(s.byQuiz[quizID]))
	for _, sub := range s.byQuiz[quizID] {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].StudentID < subs[j].StudentID })
	return subs, nil
}
