package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const attemptColumns = `id, exam_id, student_id, started_at, submitted_at, time_spent, status,
	score::float8, percentage::float8, grade, questions_attempted, correct_answers, wrong_answers,
	flagged_questions, metadata, created_at, updated_at`

// AttemptRepository handles exam attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

func scanAttempt(row pgx.Row, a *model.ExamAttempt) error {
	return row.Scan(&a.ID, &a.ExamID, &a.StudentID, &a.StartedAt, &a.SubmittedAt, &a.TimeSpent,
		&a.Status, &a.Score, &a.Percentage, &a.Grade, &a.QuestionsAttempted, &a.CorrectAnswers,
		&a.WrongAnswers, &a.FlaggedQuestions, &a.Metadata, &a.CreatedAt, &a.UpdatedAt)
}

// GetExamAttempt loads one attempt. A missing attempt is nil, nil.
func (r *AttemptRepository) GetExamAttempt(ctx context.Context, id string) (*model.ExamAttempt, error) {
	a := &model.ExamAttempt{}
	err := scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM exam_attempts WHERE id = $1`, id), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateExamAttempt starts an attempt.
func (r *AttemptRepository) CreateExamAttempt(ctx context.Context, in *model.ExamAttempt) (*model.ExamAttempt, error) {
	status := in.Status
	if status == "" {
		status = model.AttemptStatusInProgress
	}

	a := &model.ExamAttempt{}
	err := scanAttempt(r.pool.QueryRow(ctx,
		`INSERT INTO exam_attempts (exam_id, student_id, status, flagged_questions, metadata)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+attemptColumns,
		in.ExamID, in.StudentID, status, ints(in.FlaggedQuestions), object(in.Metadata),
	), a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateExamAttempt applies the non-nil fields of p. A missing attempt is
// nil, nil.
func (r *AttemptRepository) UpdateExamAttempt(ctx context.Context, id string, p model.ExamAttemptPatch) (*model.ExamAttempt, error) {
	var sets []string
	var args []any
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if p.SubmittedAt != nil {
		set("submitted_at", *p.SubmittedAt)
	}
	if p.TimeSpent != nil {
		set("time_spent", *p.TimeSpent)
	}
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.Score != nil {
		set("score", *p.Score)
	}
	if p.Percentage != nil {
		set("percentage", *p.Percentage)
	}
	if p.Grade != nil {
		set("grade", *p.Grade)
	}
	if p.QuestionsAttempted != nil {
		set("questions_attempted", *p.QuestionsAttempted)
	}
	if p.CorrectAnswers != nil {
		set("correct_answers", *p.CorrectAnswers)
	}
	if p.WrongAnswers != nil {
		set("wrong_answers", *p.WrongAnswers)
	}
	if p.FlaggedQuestions != nil {
		set("flagged_questions", ints(*p.FlaggedQuestions))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	a := &model.ExamAttempt{}
	err := scanAttempt(r.pool.QueryRow(ctx,
		`UPDATE exam_attempts SET `+strings.Join(sets, ", ")+
			` WHERE id = $`+strconv.Itoa(len(args))+` RETURNING `+attemptColumns,
		args...), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
