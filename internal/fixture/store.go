// Package fixture serves the built-in demo dataset used when the remote store
// is switched off. Every read returns fresh copies stamped with the current
// time, so callers may mutate what they get back.
package fixture

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/stemsi/cbity-backend/internal/model"
)

// ExamQuestionCount is how many fixture questions an exam is served with.
const ExamQuestionCount = 15

// Store is a read-only view over the demo dataset.
type Store struct {
	now   func() time.Time
	count func() int
}

// New creates a Store using the wall clock and a random question count per
// subject in [50, 150).
func New() *Store {
	return &Store{
		now:   time.Now,
		count: func() int { return rand.IntN(100) + 50 },
	}
}

func demoSchool() *string {
	id := DemoSchoolID
	return &id
}

// Schools returns every fixture school.
func (s *Store) Schools() []model.School {
	now := s.now()
	out := make([]model.School, len(schools))
	for i, sc := range schools {
		sc.CreatedAt, sc.UpdatedAt = now, now
		out[i] = sc
	}
	return out
}

// Users returns students followed by teachers, narrowed to role when it is
// set. All fixture users belong to the demo school.
func (s *Store) Users(role model.Role) []model.User {
	now := s.now()
	out := make([]model.User, 0, len(students)+len(teachers))
	for _, u := range slices.Concat(students, teachers) {
		if role != "" && u.Role != role {
			continue
		}
		u.SchoolID = demoSchool()
		u.Subjects = slices.Clone(u.Subjects)
		u.CreatedAt, u.UpdatedAt = now, now
		out = append(out, u)
	}
	return out
}

// Subjects returns every fixture subject with a synthetic question count.
func (s *Store) Subjects() []model.Subject {
	now := s.now()
	out := make([]model.Subject, len(subjects))
	for i, sub := range subjects {
		n := s.count()
		sub.SchoolID = demoSchool()
		sub.QuestionsCount = &n
		sub.CreatedAt, sub.UpdatedAt = now, now
		out[i] = sub
	}
	return out
}

// Questions returns the fixture question bank, narrowed to subjectID when it
// is set.
func (s *Store) Questions(subjectID string) []model.Question {
	now := s.now()
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if subjectID != "" && q.SubjectID != subjectID {
			continue
		}
		out = append(out, s.stampQuestion(q, now))
	}
	return out
}

func (s *Store) stampQuestion(q model.Question, now time.Time) model.Question {
	q.SchoolID = demoSchool()
	q.Options = slices.Clone(q.Options)
	q.CreatedAt, q.UpdatedAt = now, now
	return q
}

// Exams returns every fixture exam without its questions.
func (s *Store) Exams() []model.Exam {
	now := s.now()
	out := make([]model.Exam, len(exams))
	for i, e := range exams {
		out[i] = stampExam(e, now)
	}
	return out
}

func stampExam(e model.Exam, now time.Time) model.Exam {
	e.SchoolID = demoSchool()
	e.CreatedAt, e.UpdatedAt = now, now
	return e
}

// ExamWithQuestions returns the exam with the given id carrying the first
// ExamQuestionCount fixture questions, or nil when no exam matches.
func (s *Store) ExamWithQuestions(id string) *model.Exam {
	idx := slices.IndexFunc(exams, func(e model.Exam) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	now := s.now()
	exam := stampExam(exams[idx], now)
	exam.Questions = make([]model.Question, 0, ExamQuestionCount)
	for _, q := range questions[:min(ExamQuestionCount, len(questions))] {
		exam.Questions = append(exam.Questions, s.stampQuestion(q, now))
	}
	return &exam
}

// Results returns every fixture result.
func (s *Store) Results() []model.Result {
	now := s.now()
	out := make([]model.Result, len(results))
	for i, r := range results {
		r.SchoolID = demoSchool()
		r.SubmittedAt = now
		r.CreatedAt = now
		out[i] = r
	}
	return out
}
