package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const examColumns = `e.id, e.title, e.subject_id, e.school_id, e.class, e.duration, e.total_questions,
	e.total_marks, e.exam_type, e.scheduled_date, e.scheduled_time, e.status, e.instructions,
	e.passing_score, e.randomize_questions, e.allow_review, e.auto_submit, e.created_by,
	e.settings, e.created_at, e.updated_at`

// Derived columns appended to every exam read.
const examDerived = `,
	(SELECT to_jsonb(sub) FROM subjects sub WHERE sub.id = e.subject_id),
	(SELECT COUNT(*)::int FROM exam_attempts a WHERE a.exam_id = e.id),
	(SELECT COUNT(*)::int FROM exam_attempts a WHERE a.exam_id = e.id AND a.status = 'submitted'),
	(SELECT AVG(a.percentage)::float8 FROM exam_attempts a WHERE a.exam_id = e.id AND a.status = 'submitted')`

const examQuestions = `,
	COALESCE((SELECT jsonb_agg(to_jsonb(q) ORDER BY eq.order_num)
	          FROM exam_questions eq JOIN questions q ON q.id = eq.question_id
	          WHERE eq.exam_id = e.id), '[]'::jsonb)`

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

func examDest(e *model.Exam) []any {
	return []any{&e.ID, &e.Title, &e.SubjectID, &e.SchoolID, &e.Class, &e.Duration, &e.TotalQuestions,
		&e.TotalMarks, &e.ExamType, &e.ScheduledDate, &e.ScheduledTime, &e.Status, &e.Instructions,
		&e.PassingScore, &e.RandomizeQuestions, &e.AllowReview, &e.AutoSubmit, &e.CreatedBy,
		&e.Settings, &e.CreatedAt, &e.UpdatedAt}
}

func scanExam(row pgx.Row, e *model.Exam) error {
	return row.Scan(examDest(e)...)
}

func scanExamDerived(row pgx.Row, e *model.Exam) error {
	return row.Scan(append(examDest(e),
		&e.Subject, &e.StudentsRegistered, &e.StudentsCompleted, &e.AverageScore)...)
}

// ListExams returns exams matching f with their subject and attempt
// counters, newest first.
func (r *ExamRepository) ListExams(ctx context.Context, f model.ExamFilter) ([]model.Exam, error) {
	var w where
	w.eq("e.school_id", f.SchoolID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+examDerived+` FROM exams e`+w.String()+` ORDER BY e.created_at DESC`,
		w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanExamDerived)
}

// GetExamWithQuestions loads an exam with its questions in exam order. A
// missing exam is nil, nil.
func (r *ExamRepository) GetExamWithQuestions(ctx context.Context, id string) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+examColumns+examDerived+examQuestions+` FROM exams e WHERE e.id = $1`, id,
	).Scan(append(examDest(e),
		&e.Subject, &e.StudentsRegistered, &e.StudentsCompleted, &e.AverageScore, &e.Questions)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateExam inserts an exam and links in.QuestionIDs in the given order,
// all in one transaction.
func (r *ExamRepository) CreateExam(ctx context.Context, in *model.Exam) (*model.Exam, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	status := in.Status
	if status == "" {
		status = model.ExamStatusDraft
	}
	totalQuestions := in.TotalQuestions
	if totalQuestions == 0 {
		totalQuestions = len(in.QuestionIDs)
	}

	e := &model.Exam{}
	err = scanExam(tx.QueryRow(ctx,
		`INSERT INTO exams AS e (title, subject_id, school_id, class, duration, total_questions,
		                         total_marks, exam_type, scheduled_date, scheduled_time, status,
		                         instructions, passing_score, randomize_questions, allow_review,
		                         auto_submit, created_by, settings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, ''), 'test'), $9, $10, $11, $12,
		         $13, $14, $15, $16, $17, $18)
		 RETURNING `+examColumns,
		in.Title, in.SubjectID, in.SchoolID, in.Class, in.Duration, totalQuestions,
		in.TotalMarks, in.ExamType, in.ScheduledDate, in.ScheduledTime, status,
		in.Instructions, in.PassingScore, in.RandomizeQuestions, in.AllowReview,
		in.AutoSubmit, in.CreatedBy, rawObject(in.Settings),
	), e)
	if err != nil {
		return nil, err
	}

	if len(in.QuestionIDs) > 0 {
		batch := &pgx.Batch{}
		for i, qid := range in.QuestionIDs {
			batch.Queue(`INSERT INTO exam_questions (exam_id, question_id, order_num) VALUES ($1, $2, $3)`,
				e.ID, qid, i+1)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}
