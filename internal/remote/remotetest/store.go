// Package remotetest provides in-memory fakes of the remote backend for tests.
package remotetest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/cbity-backend/internal/model"
)

// Store is an in-memory remote.Store. Set Errs[method] to make a method fail;
// every call is recorded in order.
type Store struct {
	mu sync.Mutex

	Schools   []model.School
	Users     []model.User
	Subjects  []model.Subject
	Questions []model.Question
	Exams     []model.Exam
	Attempts  []model.ExamAttempt
	Answers   []model.ExamAnswer
	Results   []model.Result

	Errs  map[string]error
	calls []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{Errs: make(map[string]error)}
}

// Calls returns the methods invoked so far.
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Called reports whether method was invoked.
func (s *Store) Called(method string) bool {
	return slices.Contains(s.Calls(), method)
}

// SetErr makes method fail with err from now on.
func (s *Store) SetErr(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errs[method] = err
}

func (s *Store) enter(method string) error {
	s.calls = append(s.calls, method)
	return s.Errs[method]
}

func newID() string { return uuid.NewString() }

func (s *Store) ListSchools(context.Context) ([]model.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListSchools"); err != nil {
		return nil, err
	}
	return slices.Clone(s.Schools), nil
}

func (s *Store) CreateSchool(_ context.Context, in *model.School) (*model.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateSchool"); err != nil {
		return nil, err
	}
	out := *in
	if out.ID == "" {
		out.ID = newID()
	}
	out.CreatedAt, out.UpdatedAt = time.Now(), time.Now()
	s.Schools = append(s.Schools, out)
	return &out, nil
}

func (s *Store) SubdomainTaken(_ context.Context, subdomain string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("SubdomainTaken"); err != nil {
		return false, err
	}
	return slices.ContainsFunc(s.Schools, func(sc model.School) bool { return sc.Subdomain == subdomain }), nil
}

func (s *Store) UpdateSchoolStatusByOwner(_ context.Context, ownerID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateSchoolStatusByOwner"); err != nil {
		return err
	}
	for i := range s.Schools {
		if s.Schools[i].OwnerID != nil && *s.Schools[i].OwnerID == ownerID {
			s.Schools[i].Status = status
		}
	}
	return nil
}

func (s *Store) ListUsers(_ context.Context, f model.UserFilter) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListUsers"); err != nil {
		return nil, err
	}
	out := []model.User{}
	for _, u := range s.Users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.SchoolID != "" && (u.SchoolID == nil || *u.SchoolID != f.SchoolID) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, in *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateUser"); err != nil {
		return nil, err
	}
	out := *in
	if out.ID == "" {
		out.ID = newID()
	}
	out.CreatedAt, out.UpdatedAt = time.Now(), time.Now()
	s.Users = append(s.Users, out)
	return &out, nil
}

func (s *Store) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetUser"); err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(s.Users, func(u model.User) bool { return u.ID == id })
	if idx < 0 {
		return nil, nil
	}
	u := s.Users[idx]
	if u.SchoolID != nil {
		for _, sc := range s.Schools {
			if sc.ID == *u.SchoolID {
				school := sc
				u.School = &school
			}
		}
	}
	return &u, nil
}

func (s *Store) UpdateUserStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateUserStatus"); err != nil {
		return err
	}
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users[i].Status = status
		}
	}
	return nil
}

func (s *Store) ListSubjects(_ context.Context, f model.SubjectFilter) ([]model.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListSubjects"); err != nil {
		return nil, err
	}
	out := []model.Subject{}
	for _, sub := range s.Subjects {
		if f.SchoolID != "" && (sub.SchoolID == nil || *sub.SchoolID != f.SchoolID) {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *Store) CreateSubject(_ context.Context, in *model.Subject) (*model.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateSubject"); err != nil {
		return nil, err
	}
	out := *in
	out.ID = newID()
	s.Subjects = append(s.Subjects, out)
	return &out, nil
}

func (s *Store) ListQuestions(_ context.Context, f model.QuestionFilter) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListQuestions"); err != nil {
		return nil, err
	}
	out := []model.Question{}
	for _, q := range s.Questions {
		if f.SubjectID != "" && q.SubjectID != f.SubjectID {
			continue
		}
		if f.SchoolID != "" && (q.SchoolID == nil || *q.SchoolID != f.SchoolID) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *Store) CreateQuestion(_ context.Context, in *model.Question) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateQuestion"); err != nil {
		return nil, err
	}
	out := *in
	out.ID = newID()
	s.Questions = append(s.Questions, out)
	return &out, nil
}

func (s *Store) ListExams(_ context.Context, f model.ExamFilter) ([]model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListExams"); err != nil {
		return nil, err
	}
	out := []model.Exam{}
	for _, e := range s.Exams {
		if f.SchoolID != "" && (e.SchoolID == nil || *e.SchoolID != f.SchoolID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) GetExamWithQuestions(_ context.Context, id string) (*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetExamWithQuestions"); err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(s.Exams, func(e model.Exam) bool { return e.ID == id })
	if idx < 0 {
		return nil, nil
	}
	e := s.Exams[idx]
	e.Questions = []model.Question{}
	for _, qid := range e.QuestionIDs {
		for _, q := range s.Questions {
			if q.ID == qid {
				e.Questions = append(e.Questions, q)
			}
		}
	}
	return &e, nil
}

func (s *Store) CreateExam(_ context.Context, in *model.Exam) (*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateExam"); err != nil {
		return nil, err
	}
	out := *in
	out.ID = newID()
	s.Exams = append(s.Exams, out)
	return &out, nil
}

func (s *Store) GetExamAttempt(_ context.Context, id string) (*model.ExamAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetExamAttempt"); err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(s.Attempts, func(a model.ExamAttempt) bool { return a.ID == id })
	if idx < 0 {
		return nil, nil
	}
	out := s.Attempts[idx]
	return &out, nil
}

func (s *Store) CreateExamAttempt(_ context.Context, in *model.ExamAttempt) (*model.ExamAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateExamAttempt"); err != nil {
		return nil, err
	}
	out := *in
	out.ID = newID()
	s.Attempts = append(s.Attempts, out)
	return &out, nil
}

func (s *Store) UpdateExamAttempt(_ context.Context, id string, p model.ExamAttemptPatch) (*model.ExamAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateExamAttempt"); err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(s.Attempts, func(a model.ExamAttempt) bool { return a.ID == id })
	if idx < 0 {
		return nil, nil
	}
	a := &s.Attempts[idx]
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.SubmittedAt != nil {
		a.SubmittedAt = p.SubmittedAt
	}
	if p.TimeSpent != nil {
		a.TimeSpent = *p.TimeSpent
	}
	if p.Score != nil {
		a.Score = *p.Score
	}
	if p.Percentage != nil {
		a.Percentage = *p.Percentage
	}
	if p.Grade != nil {
		a.Grade = *p.Grade
	}
	out := *a
	return &out, nil
}

func (s *Store) ListExamAnswers(_ context.Context, f model.AnswerFilter) ([]model.ExamAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListExamAnswers"); err != nil {
		return nil, err
	}
	out := []model.ExamAnswer{}
	for _, a := range s.Answers {
		if f.AttemptID != "" && a.AttemptID != f.AttemptID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) CreateExamAnswer(_ context.Context, in *model.ExamAnswer) (*model.ExamAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateExamAnswer"); err != nil {
		return nil, err
	}
	out := *in
	out.ID = newID()
	s.Answers = append(s.Answers, out)
	return &out, nil
}

func (s *Store) ListResults(_ context.Context, f model.ResultFilter) ([]model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListResults"); err != nil {
		return nil, err
	}
	out := []model.Result{}
	for _, r := range s.Results {
		if f.StudentID != "" && r.StudentID != f.StudentID {
			continue
		}
		if f.SchoolID != "" && (r.SchoolID == nil || *r.SchoolID != f.SchoolID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) CreateResult(_ context.Context, in *model.Result) (*model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateResult"); err != nil {
		return nil, err
	}
	out := *in
	out.ID = newID()
	s.Results = append(s.Results, out)
	return &out, nil
}
