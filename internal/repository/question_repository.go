package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const questionColumns = `q.id, q.subject_id, q.school_id, q.question, q.type, q.options,
	q.correct_answer, q.explanation, q.difficulty, q.topic, q.marks, q.time_allocation,
	q.tags, q.created_by, q.created_at, q.updated_at`

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func questionDest(q *model.Question) []any {
	return []any{&q.ID, &q.SubjectID, &q.SchoolID, &q.Question, &q.Type, &q.Options,
		&q.CorrectAnswer, &q.Explanation, &q.Difficulty, &q.Topic, &q.Marks, &q.TimeAllocation,
		&q.Tags, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt}
}

func scanQuestion(row pgx.Row, q *model.Question) error {
	return row.Scan(questionDest(q)...)
}

func scanQuestionWithSubject(row pgx.Row, q *model.Question) error {
	return row.Scan(append(questionDest(q), &q.Subject)...)
}

// ListQuestions returns questions matching f with their subject, newest
// first.
func (r *QuestionRepository) ListQuestions(ctx context.Context, f model.QuestionFilter) ([]model.Question, error) {
	var w where
	w.eq("q.subject_id", f.SubjectID)
	w.eq("q.school_id", f.SchoolID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`,
		        (SELECT to_jsonb(sub) FROM subjects sub WHERE sub.id = q.subject_id)
		 FROM questions q`+w.String()+` ORDER BY q.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQuestionWithSubject)
}

// CreateQuestion inserts a question.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, in *model.Question) (*model.Question, error) {
	q := &model.Question{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		`INSERT INTO questions AS q (subject_id, school_id, question, type, options, correct_answer,
		                             explanation, difficulty, topic, marks, time_allocation, tags, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, ''), 'medium'), $9,
		         COALESCE(NULLIF($10, 0), 1), COALESCE(NULLIF($11, 0), 60), $12, $13)
		 RETURNING `+questionColumns,
		in.SubjectID, in.SchoolID, in.Question, in.Type, strs(in.Options), in.CorrectAnswer,
		in.Explanation, in.Difficulty, in.Topic, in.Marks, in.TimeAllocation, strs(in.Tags), in.CreatedBy,
	), q)
	if err != nil {
		return nil, err
	}
	return q, nil
}
