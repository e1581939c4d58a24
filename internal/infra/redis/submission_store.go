package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-grading-service/internal/domain"
)

// SubmissionStore keeps submission documents in a Redis hash per quiz:
// HSET quiz:{quizID}:submissions {studentID} {json}. Suitable for
// deployments without Postgres; writes are last-writer-wins per field,
// matching the store's single-document semantics.
type SubmissionStore struct {
	client *redis.Client
}

func NewSubmissionStore(client *redis.Client) *SubmissionStore {
	return &SubmissionStore{client: client}
}

func (s *SubmissionStore) Put(ctx context.Context, quizID string, sub domain.QuizSubmission) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	if err := s.client.HSet(ctx, s.key(quizID), sub.StudentID, raw).Err(); err != nil {
		return fmt.Errorf("put submission: %w", err)
	}
	return nil
}

func (s *SubmissionStore) Get(ctx context.Context, quizID, studentID string) (domain.QuizSubmission, error) {
	raw, err := s.client.HGet(ctx, s.key(quizID), studentID).Bytes()
	if err == redis.Nil {
		return domain.QuizSubmission{}, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return domain.QuizSubmission{}, fmt.Errorf("get submission: %w", err)
	}
	var sub domain.QuizSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return domain.QuizSubmission{}, fmt.Errorf("unmarshal submission: %w", err)
	}
	return sub, nil
}

func (s *SubmissionStore) Update(ctx context.Context, quizID string, sub domain.QuizSubmission) error {
	exists, err := s.client.HExists(ctx, s.key(quizID), sub.StudentID).Result()
	if err != nil {
		return fmt.Errorf("check submission: %w", err)
	}
	if !exists {
		return domain.ErrSubmissionNotFound
	}
	return s.Put(ctx, quizID, sub)
}

func (s *SubmissionStore) ListByQuiz(ctx context.Context, quizID string) ([]domain.QuizSubmission, error) {
	fields, err := s.client.HGetAll(ctx, s.key(quizID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	subs := make([]domain.QuizSubmission, 0, len(fields))
	for _, raw := range fields {
		var sub domain.QuizSubmission
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			return nil, fmt.Errorf("unmarshal submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (s *SubmissionStore) key(quizID string) string {
	return "quiz:" + quizID + ":submissions"
}
