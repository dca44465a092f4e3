package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const answerColumns = `ans.id, ans.attempt_id, ans.question_id, ans.answer, ans.is_correct,
	ans.time_spent, ans.flagged, ans.created_at, ans.updated_at`

// AnswerRepository handles exam answer data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

func answerDest(a *model.ExamAnswer) []any {
	return []any{&a.ID, &a.AttemptID, &a.QuestionID, &a.Answer, &a.IsCorrect,
		&a.TimeSpent, &a.Flagged, &a.CreatedAt, &a.UpdatedAt}
}

func scanAnswer(row pgx.Row, a *model.ExamAnswer) error {
	return row.Scan(answerDest(a)...)
}

func scanAnswerWithQuestion(row pgx.Row, a *model.ExamAnswer) error {
	return row.Scan(append(answerDest(a), &a.Question)...)
}

// ListExamAnswers returns answers matching f with their question, newest
// first.
func (r *AnswerRepository) ListExamAnswers(ctx context.Context, f model.AnswerFilter) ([]model.ExamAnswer, error) {
	var w where
	w.eq("ans.attempt_id", f.AttemptID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+answerColumns+`,
		        (SELECT to_jsonb(q) FROM questions q WHERE q.id = ans.question_id)
		 FROM exam_answers ans`+w.String()+` ORDER BY ans.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAnswerWithQuestion)
}

// CreateExamAnswer records an answer. Answering the same question again
// within an attempt replaces the earlier answer.
func (r *AnswerRepository) CreateExamAnswer(ctx context.Context, in *model.ExamAnswer) (*model.ExamAnswer, error) {
	a := &model.ExamAnswer{}
	err := scanAnswer(r.pool.QueryRow(ctx,
		`INSERT INTO exam_answers AS ans (attempt_id, question_id, answer, is_correct, time_spent, flagged)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (attempt_id, question_id) DO UPDATE
		   SET answer = EXCLUDED.answer, is_correct = EXCLUDED.is_correct,
		       time_spent = EXCLUDED.time_spent, flagged = EXCLUDED.flagged, updated_at = NOW()
		 RETURNING `+answerColumns,
		in.AttemptID, in.QuestionID, in.Answer, in.IsCorrect, in.TimeSpent, in.Flagged,
	), a)
	if err != nil {
		return nil, err
	}
	return a, nil
}
