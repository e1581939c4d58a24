package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-grading-service/internal/domain"
)

// SubmissionStore persists submission documents as JSONB rows keyed by
// (quiz_id, student_id). Put upserts, so a resubmission overwrites the prior
// document in a single atomic statement; Update refuses to create.
type SubmissionStore struct {
	pool *pgxpool.Pool
}

func NewSubmissionStore(pool *pgxpool.Pool) *SubmissionStore {
	return &SubmissionStore{pool: pool}
}

func (s *SubmissionStore) Put(ctx context.Context, quizID string, sub domain.QuizSubmission) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quiz_submissions (quiz_id, student_id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (quiz_id, student_id) DO UPDATE SET data = EXCLUDED.data`,
		quizID, sub.StudentID, raw)
	if err != nil {
		return fmt.Errorf("put submission: %w", err)
	}
	return nil
}

func (s *SubmissionStore) Get(ctx context.Context, quizID, studentID string) (domain.QuizSubmission, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM quiz_submissions WHERE quiz_id=$1 AND student_id=$2`,
		quizID, studentID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
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
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE quiz_submissions SET data=$3 WHERE quiz_id=$1 AND student_id=$2`,
		quizID, sub.StudentID, raw)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (s *SubmissionStore) ListByQuiz(ctx context.Context, quizID string) ([]domain.QuizSubmission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM quiz_submissions WHERE quiz_id=$1 ORDER BY student_id`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.QuizSubmission
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		var sub domain.QuizSubmission
		if err := json.Unmarshal(raw, &sub); err != nil {
			return nil, fmt.Errorf("unmarshal submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
