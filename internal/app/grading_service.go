package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-grading-service/internal/domain"
)

// SubmissionStore abstracts how submission documents are persisted
// (in-memory, Redis, Postgres). Semantics follow a document store: Put
// creates or silently overwrites, Update fails when the document is absent.
type SubmissionStore interface {
	Put(ctx context.Context, quizID string, sub domain.QuizSubmission) error
	Get(ctx context.Context, quizID, studentID string) (domain.QuizSubmission, error)
	Update(ctx context.Context, quizID string, sub domain.QuizSubmission) error
	ListByQuiz(ctx context.Context, quizID string) ([]domain.QuizSubmission, error)
}

// QuizRepository loads quiz definitions (from cache/backing store). Quizzes
// are read-only from this service's point of view.
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// SubmissionEvent is pushed to watchers whenever a submission is written.
type SubmissionEvent struct {
	ID         string                `json:"id"`
	QuizID     string                `json:"quizId"`
	Kind       string                `json:"kind"` // submitted | graded
	Submission domain.QuizSubmission `json:"submission"`
}

// QuizStats summarizes the submissions recorded for one quiz.
type QuizStats struct {
	QuizID       string  `json:"quizId"`
	Submissions  int     `json:"submissions"`
	AverageScore float64 `json:"averageScore"`
}

// GradingService contains the scoring and grading use cases.
type GradingService struct {
	submissions SubmissionStore
	quizzes     QuizRepository
	feed        *feed
	now         func() time.Time
}

func NewGradingService(submissions SubmissionStore, quizzes QuizRepository) *GradingService {
	return &GradingService{
		submissions: submissions,
		quizzes:     quizzes,
		feed:        newFeed(),
		now:         time.Now,
	}
}

// NewGradingServiceWithClock is test-only for deterministic timestamps.
func NewGradingServiceWithClock(submissions SubmissionStore, quizzes QuizRepository, now func() time.Time) *GradingService {
	svc := NewGradingService(submissions, quizzes)
	svc.now = now
	return svc
}

// Submit builds and persists a submission for one student. A repeat call for
// the same (quiz, student) overwrites the earlier submission; last write wins.
func (s *GradingService) Submit(ctx context.Context, quizID, studentID, studentName string, responses map[int]string) (domain.QuizSubmission, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizSubmission{}, err
	}

	sub, err := BuildSubmission(quiz, studentID, studentName, responses, s.now())
	if err != nil {
		return domain.QuizSubmission{}, err
	}

	if err := s.submissions.Put(ctx, quizID, sub); err != nil {
		return domain.QuizSubmission{}, err
	}

	s.feed.publish(quizID, "submitted", sub)
	return sub, nil
}

// Grade merges instructor judgments into an existing submission, recomputes
// its score and persists the result. The store rejects the write when the
// submission vanished between read and update.
func (s *GradingService) Grade(ctx context.Context, quizID, studentID string, judgments map[int]domain.Judgment) (domain.QuizSubmission, error) {
	sub, err := s.submissions.Get(ctx, quizID, studentID)
	if err != nil {
		return domain.QuizSubmission{}, err
	}

	graded, err := Reconcile(sub, sub.TotalQuestions, judgments)
	if err != nil {
		return domain.QuizSubmission{}, err
	}

	if err := s.submissions.Update(ctx, quizID, graded); err != nil {
		return domain.QuizSubmission{}, err
	}

	s.feed.publish(quizID, "graded", graded)
	return graded, nil
}

// GetSubmission fetches one student's submission for a quiz.
func (s *GradingService) GetSubmission(ctx context.Context, quizID, studentID string) (domain.QuizSubmission, error) {
	return s.submissions.Get(ctx, quizID, studentID)
}

// Stats returns the average score across a quiz's submissions. A failed read
// degrades to zero values with a log line rather than an error; dashboards
// prefer a zero over a broken page.
func (s *GradingService) Stats(ctx context.Context, quizID string) QuizStats {
	subs, err := s.submissions.ListByQuiz(ctx, quizID)
	if err != nil {
		log.Printf("list submissions for %s: %v", quizID, err)
		return QuizStats{QuizID: quizID}
	}
	return QuizStats{
		QuizID:       quizID,
		Submissions:  len(subs),
		AverageScore: AverageScore(subs),
	}
}

// Watch returns a channel of submission events for a quiz. The caller must
// invoke the returned cancel function to avoid leaks. Watching an unknown
// quiz is an error.
func (s *GradingService) Watch(ctx context.Context, quizID string) (<-chan SubmissionEvent, func(), error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, nil, err
	}
	ch, cancel := s.feed.subscribe(quizID)
	return ch, cancel, nil
}

// feed fans submission events out to per-quiz subscribers.
type feed struct {
	mu          sync.Mutex
	subscribers map[string]map[chan SubmissionEvent]struct{}
}

func newFeed() *feed {
	return &feed{subscribers: make(map[string]map[chan SubmissionEvent]struct{})}
}

func (f *feed) subscribe(quizID string) (<-chan SubmissionEvent, func()) {
	ch := make(chan SubmissionEvent, 8)

	f.mu.Lock()
	set, ok := f.subscribers[quizID]
	if !ok {
		set = make(map[chan SubmissionEvent]struct{})
		f.subscribers[quizID] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if set, ok := f.subscribers[quizID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(f.subscribers, quizID)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

func (f *feed) publish(quizID, kind string, sub domain.QuizSubmission) {
	event := SubmissionEvent{
		ID:         uuid.NewString(),
		QuizID:     quizID,
		Kind:       kind,
		Submission: sub,
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[quizID] {
		select {
		case ch <- event:
		default:
			// Drop the oldest pending event so a slow dashboard never blocks a write.
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
