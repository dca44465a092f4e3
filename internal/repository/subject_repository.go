package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const subjectColumns = `sub.id, sub.name, sub.code, sub.description, sub.color, sub.duration,
	sub.difficulty, sub.school_id, sub.status, sub.created_at, sub.updated_at`

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func subjectDest(s *model.Subject) []any {
	return []any{&s.ID, &s.Name, &s.Code, &s.Description, &s.Color, &s.Duration,
		&s.Difficulty, &s.SchoolID, &s.Status, &s.CreatedAt, &s.UpdatedAt}
}

func scanSubject(row pgx.Row, s *model.Subject) error {
	return row.Scan(subjectDest(s)...)
}

func scanSubjectWithCount(row pgx.Row, s *model.Subject) error {
	return row.Scan(append(subjectDest(s), &s.QuestionsCount)...)
}

// ListSubjects returns subjects matching f with their question counts,
// newest first.
func (r *SubjectRepository) ListSubjects(ctx context.Context, f model.SubjectFilter) ([]model.Subject, error) {
	var w where
	w.eq("sub.school_id", f.SchoolID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+subjectColumns+`,
		        (SELECT COUNT(*)::int FROM questions q WHERE q.subject_id = sub.id)
		 FROM subjects sub`+w.String()+` ORDER BY sub.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSubjectWithCount)
}

// CreateSubject inserts a subject.
func (r *SubjectRepository) CreateSubject(ctx context.Context, in *model.Subject) (*model.Subject, error) {
	s := &model.Subject{}
	err := scanSubject(r.pool.QueryRow(ctx,
		`INSERT INTO subjects AS sub (name, code, description, color, duration, difficulty, school_id, status)
		 VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'blue'), COALESCE(NULLIF($5, 0), 60),
		         COALESCE(NULLIF($6, ''), 'medium'), $7, COALESCE(NULLIF($8, ''), 'active'))
		 RETURNING `+subjectColumns,
		in.Name, in.Code, in.Description, in.Color, in.Duration, in.Difficulty, in.SchoolID, in.Status,
	), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}
