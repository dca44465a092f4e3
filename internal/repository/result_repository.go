package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const resultColumns = `r.id, r.attempt_id, r.exam_id, r.student_id, r.subject_id, r.school_id,
	r.score::float8, r.total_marks, r.percentage::float8, r.grade, r.time_spent, r.submitted_at,
	r.remarks, r.analytics, r.created_at`

// ResultRepository handles result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func resultDest(res *model.Result) []any {
	return []any{&res.ID, &res.AttemptID, &res.ExamID, &res.StudentID, &res.SubjectID, &res.SchoolID,
		&res.Score, &res.TotalMarks, &res.Percentage, &res.Grade, &res.TimeSpent, &res.SubmittedAt,
		&res.Remarks, &res.Analytics, &res.CreatedAt}
}

func scanResult(row pgx.Row, res *model.Result) error {
	return row.Scan(resultDest(res)...)
}

func scanResultWithRelations(row pgx.Row, res *model.Result) error {
	return row.Scan(append(resultDest(res), &res.Exam, &res.Student, &res.Subject)...)
}

// ListResults returns results matching f with their exam, student and
// subject, newest first.
func (rr *ResultRepository) ListResults(ctx context.Context, f model.ResultFilter) ([]model.Result, error) {
	var w where
	w.eq("r.student_id", f.StudentID)
	w.eq("r.school_id", f.SchoolID)

	rows, err := rr.pool.Query(ctx,
		`SELECT `+resultColumns+`,
		        (SELECT to_jsonb(e) FROM exams e WHERE e.id = r.exam_id),
		        (SELECT to_jsonb(u) FROM users u WHERE u.id = r.student_id),
		        (SELECT to_jsonb(sub) FROM subjects sub WHERE sub.id = r.subject_id)
		 FROM results r`+w.String()+` ORDER BY r.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanResultWithRelations)
}

// CreateResult records a result.
func (rr *ResultRepository) CreateResult(ctx context.Context, in *model.Result) (*model.Result, error) {
	res := &model.Result{}
	err := scanResult(rr.pool.QueryRow(ctx,
		`INSERT INTO results AS r (attempt_id, exam_id, student_id, subject_id, school_id, score,
		                           total_marks, percentage, grade, time_spent, submitted_at, remarks, analytics)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+resultColumns,
		in.AttemptID, in.ExamID, in.StudentID, in.SubjectID, in.SchoolID, in.Score,
		in.TotalMarks, in.Percentage, in.Grade, in.TimeSpent, in.SubmittedAt, in.Remarks, rawObject(in.Analytics),
	), res)
	if err != nil {
		return nil, err
	}
	return res, nil
}
