package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/fixture"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/remote"
)

// ModeSource reports whether the remote store is active.
type ModeSource interface {
	Get() bool
}

// DataService is the single entry point for domain data. Each call reads the
// mode once and is served entirely by either the fixture dataset or the
// remote store. In fixture mode every mutation fails with a
// *ConfigurationError without touching the remote store.
type DataService struct {
	mode     ModeSource
	fixtures *fixture.Store
	remote   remote.Store
	log      zerolog.Logger
}

// NewDataService creates a new DataService.
func NewDataService(mode ModeSource, fixtures *fixture.Store, rs remote.Store, log zerolog.Logger) *DataService {
	return &DataService{
		mode:     mode,
		fixtures: fixtures,
		remote:   rs,
		log:      log.With().Str("component", "data_service").Logger(),
	}
}

// UsingRemote reports the active data source.
func (s *DataService) UsingRemote() bool {
	return s.mode.Get()
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func (s *DataService) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	s.log.Warn().Err(err).Str("op", op).Msg("remote operation failed")
	return &RemoteError{Op: op, Err: err}
}

// ─── Schools ───────────────────────────────────────────────────────────

func (s *DataService) ListSchools(ctx context.Context) ([]model.School, error) {
	if !s.mode.Get() {
		return s.fixtures.Schools(), nil
	}
	schools, err := s.remote.ListSchools(ctx)
	if err != nil {
		return nil, s.fail("list schools", err)
	}
	return nonNil(schools), nil
}

func (s *DataService) CreateSchool(ctx context.Context, in *model.School) (*model.School, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "creating schools"}
	}
	out, err := s.remote.CreateSchool(ctx, in)
	return out, s.fail("create school", err)
}

// ─── Users ─────────────────────────────────────────────────────────────

// ListUsers returns users matching f. The fixture dataset only honours the
// role filter.
func (s *DataService) ListUsers(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	if !s.mode.Get() {
		return s.fixtures.Users(f.Role), nil
	}
	users, err := s.remote.ListUsers(ctx, f)
	if err != nil {
		return nil, s.fail("list users", err)
	}
	return nonNil(users), nil
}

func (s *DataService) CreateUser(ctx context.Context, in *model.User) (*model.User, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "creating users"}
	}
	out, err := s.remote.CreateUser(ctx, in)
	return out, s.fail("create user", err)
}

// ─── Subjects ──────────────────────────────────────────────────────────

func (s *DataService) ListSubjects(ctx context.Context, f model.SubjectFilter) ([]model.Subject, error) {
	if !s.mode.Get() {
		return s.fixtures.Subjects(), nil
	}
	subjects, err := s.remote.ListSubjects(ctx, f)
	if err != nil {
		return nil, s.fail("list subjects", err)
	}
	return nonNil(subjects), nil
}

func (s *DataService) CreateSubject(ctx context.Context, in *model.Subject) (*model.Subject, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "creating subjects"}
	}
	out, err := s.remote.CreateSubject(ctx, in)
	return out, s.fail("create subject", err)
}

// ─── Questions ─────────────────────────────────────────────────────────

// ListQuestions returns questions matching f. The fixture dataset only
// honours the subject filter.
func (s *DataService) ListQuestions(ctx context.Context, f model.QuestionFilter) ([]model.Question, error) {
	if !s.mode.Get() {
		return s.fixtures.Questions(f.SubjectID), nil
	}
	questions, err := s.remote.ListQuestions(ctx, f)
	if err != nil {
		return nil, s.fail("list questions", err)
	}
	return nonNil(questions), nil
}

func (s *DataService) CreateQuestion(ctx context.Context, in *model.Question) (*model.Question, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "creating questions"}
	}
	out, err := s.remote.CreateQuestion(ctx, in)
	return out, s.fail("create question", err)
}

// ─── Exams ─────────────────────────────────────────────────────────────

func (s *DataService) ListExams(ctx context.Context, f model.ExamFilter) ([]model.Exam, error) {
	if !s.mode.Get() {
		return s.fixtures.Exams(), nil
	}
	exams, err := s.remote.ListExams(ctx, f)
	if err != nil {
		return nil, s.fail("list exams", err)
	}
	return nonNil(exams), nil
}

// GetExamWithQuestions returns the exam with its ordered questions, or nil
// when no exam has that id.
func (s *DataService) GetExamWithQuestions(ctx context.Context, id string) (*model.Exam, error) {
	if !s.mode.Get() {
		return s.fixtures.ExamWithQuestions(id), nil
	}
	exam, err := s.remote.GetExamWithQuestions(ctx, id)
	if err != nil {
		return nil, s.fail("get exam", err)
	}
	if exam != nil {
		exam.Questions = nonNil(exam.Questions)
	}
	return exam, nil
}

func (s *DataService) CreateExam(ctx context.Context, in *model.Exam) (*model.Exam, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "creating exams"}
	}
	out, err := s.remote.CreateExam(ctx, in)
	return out, s.fail("create exam", err)
}

// ─── Attempts & answers ────────────────────────────────────────────────

// GetExamAttempt returns one attempt, or nil when no attempt has that id. The
// fixture dataset has no attempts.
func (s *DataService) GetExamAttempt(ctx context.Context, id string) (*model.ExamAttempt, error) {
	if !s.mode.Get() {
		return nil, nil
	}
	out, err := s.remote.GetExamAttempt(ctx, id)
	if err != nil {
		return nil, s.fail("get exam attempt", err)
	}
	return out, nil
}

func (s *DataService) CreateExamAttempt(ctx context.Context, in *model.ExamAttempt) (*model.ExamAttempt, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "exam attempts"}
	}
	out, err := s.remote.CreateExamAttempt(ctx, in)
	return out, s.fail("create exam attempt", err)
}

// UpdateExamAttempt applies p to the attempt and returns the updated row, or
// nil when no attempt has that id.
func (s *DataService) UpdateExamAttempt(ctx context.Context, id string, p model.ExamAttemptPatch) (*model.ExamAttempt, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "exam attempts"}
	}
	out, err := s.remote.UpdateExamAttempt(ctx, id, p)
	return out, s.fail("update exam attempt", err)
}

// ListExamAnswers returns answers matching f. The fixture dataset has no
// answers.
func (s *DataService) ListExamAnswers(ctx context.Context, f model.AnswerFilter) ([]model.ExamAnswer, error) {
	if !s.mode.Get() {
		return []model.ExamAnswer{}, nil
	}
	answers, err := s.remote.ListExamAnswers(ctx, f)
	if err != nil {
		return nil, s.fail("list exam answers", err)
	}
	return nonNil(answers), nil
}

func (s *DataService) CreateExamAnswer(ctx context.Context, in *model.ExamAnswer) (*model.ExamAnswer, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "exam answers"}
	}
	out, err := s.remote.CreateExamAnswer(ctx, in)
	return out, s.fail("create exam answer", err)
}

// ─── Results ───────────────────────────────────────────────────────────

// ListResults returns results matching f. The fixture dataset ignores the
// filter.
func (s *DataService) ListResults(ctx context.Context, f model.ResultFilter) ([]model.Result, error) {
	if !s.mode.Get() {
		return s.fixtures.Results(), nil
	}
	results, err := s.remote.ListResults(ctx, f)
	if err != nil {
		return nil, s.fail("list results", err)
	}
	return nonNil(results), nil
}

func (s *DataService) CreateResult(ctx context.Context, in *model.Result) (*model.Result, error) {
	if !s.mode.Get() {
		return nil, &ConfigurationError{Op: "creating results"}
	}
	out, err := s.remote.CreateResult(ctx, in)
	return out, s.fail("create result", err)
}
