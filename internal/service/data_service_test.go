package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/fixture"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/remote/remotetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticMode bool

func (m staticMode) Get() bool { return bool(m) }

func newDataService(remoteMode bool) (*DataService, *remotetest.Store) {
	store := remotetest.NewStore()
	return NewDataService(staticMode(remoteMode), fixture.New(), store, zerolog.Nop()), store
}

func TestFixtureListsNeverReachRemote(t *testing.T) {
	ctx := context.Background()
	svc, store := newDataService(false)

	for _, role := range append([]model.Role{""}, model.AllRoles...) {
		for _, school := range []string{"", fixture.DemoSchoolID, "other"} {
			_, err := svc.ListUsers(ctx, model.UserFilter{Role: role, SchoolID: school})
			require.NoError(t, err)
		}
	}
	_, err := svc.ListSchools(ctx)
	require.NoError(t, err)
	_, err = svc.ListSubjects(ctx, model.SubjectFilter{SchoolID: "x"})
	require.NoError(t, err)
	_, err = svc.ListQuestions(ctx, model.QuestionFilter{SubjectID: "x", SchoolID: "y"})
	require.NoError(t, err)
	_, err = svc.ListExams(ctx, model.ExamFilter{SchoolID: "x"})
	require.NoError(t, err)
	_, err = svc.ListExamAnswers(ctx, model.AnswerFilter{AttemptID: "x"})
	require.NoError(t, err)
	_, err = svc.ListResults(ctx, model.ResultFilter{StudentID: "x"})
	require.NoError(t, err)
	_, err = svc.GetExamWithQuestions(ctx, "exam_1")
	require.NoError(t, err)
	attempt, err := svc.GetExamAttempt(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, attempt)

	assert.Empty(t, store.Calls())
}

func TestFixtureMutationsFailWithConfigurationError(t *testing.T) {
	ctx := context.Background()
	svc, store := newDataService(false)

	calls := map[string]func() error{
		"school": func() error { _, err := svc.CreateSchool(ctx, &model.School{Name: "X"}); return err },
		"user":   func() error { _, err := svc.CreateUser(ctx, &model.User{}); return err },
		"subject": func() error {
			_, err := svc.CreateSubject(ctx, &model.Subject{Name: "Maths"})
			return err
		},
		"question": func() error { _, err := svc.CreateQuestion(ctx, &model.Question{}); return err },
		"exam":     func() error { _, err := svc.CreateExam(ctx, &model.Exam{}); return err },
		"attempt":  func() error { _, err := svc.CreateExamAttempt(ctx, &model.ExamAttempt{}); return err },
		"update": func() error {
			_, err := svc.UpdateExamAttempt(ctx, "a", model.ExamAttemptPatch{})
			return err
		},
		"answer": func() error { _, err := svc.CreateExamAnswer(ctx, &model.ExamAnswer{}); return err },
		"result": func() error { _, err := svc.CreateResult(ctx, &model.Result{}); return err },
	}

	for name, call := range calls {
		err := call()
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), name)
		assert.ErrorIs(t, err, ErrRemoteModeRequired, name)
	}
	assert.Empty(t, store.Calls())
}

func TestConfigurationErrorMessage(t *testing.T) {
	_, err := func() (*model.School, error) {
		svc, _ := newDataService(false)
		return svc.CreateSchool(context.Background(), &model.School{})
	}()
	assert.EqualError(t, err, "Database mode required for creating schools")
}

func TestFixtureStudentsAndTeachersCoverAllUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDataService(false)

	all, err := svc.ListUsers(ctx, model.UserFilter{})
	require.NoError(t, err)
	students, err := svc.ListUsers(ctx, model.UserFilter{Role: model.RoleStudent})
	require.NoError(t, err)
	teachers, err := svc.ListUsers(ctx, model.UserFilter{Role: model.RoleTeacher})
	require.NoError(t, err)

	for _, s := range students {
		assert.Equal(t, model.RoleStudent, s.Role)
	}
	assert.Len(t, all, len(students)+len(teachers))
}

func TestRemoteListForwardsFilters(t *testing.T) {
	ctx := context.Background()
	svc, store := newDataService(true)
	school := "550e8400-e29b-41d4-a716-446655440001"
	store.Users = []model.User{
		{ID: "1", Role: model.RoleStudent, SchoolID: &school},
		{ID: "2", Role: model.RoleTeacher, SchoolID: &school},
		{ID: "3", Role: model.RoleStudent},
	}

	users, err := svc.ListUsers(ctx, model.UserFilter{Role: model.RoleStudent, SchoolID: school})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, []string{"ListUsers"}, store.Calls())
}

func TestRemoteEmptyListIsNotNil(t *testing.T) {
	svc, _ := newDataService(true)
	results, err := svc.ListResults(context.Background(), model.ResultFilter{StudentID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRemoteErrorsPropagateVerbatim(t *testing.T) {
	ctx := context.Background()
	svc, store := newDataService(true)
	cause := errors.New(`duplicate key value violates unique constraint "users_email_key"`)
	store.SetErr("CreateUser", cause)

	_, err := svc.CreateUser(ctx, &model.User{Email: "a@b.co"})
	require.Error(t, err)
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "create user", remoteErr.Op)
}

func TestRemoteCreateWritesThrough(t *testing.T) {
	ctx := context.Background()
	svc, store := newDataService(true)

	school, err := svc.CreateSchool(ctx, &model.School{Name: "Kings College", Subdomain: "kings"})
	require.NoError(t, err)
	assert.NotEmpty(t, school.ID)
	assert.Len(t, store.Schools, 1)
}

func TestGetExamWithQuestions(t *testing.T) {
	ctx := context.Background()

	fixtureSvc, _ := newDataService(false)
	exam, err := fixtureSvc.GetExamWithQuestions(ctx, "exam_1")
	require.NoError(t, err)
	require.NotNil(t, exam)
	assert.Len(t, exam.Questions, fixture.ExamQuestionCount)

	missing, err := fixtureSvc.GetExamWithQuestions(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	remoteSvc, store := newDataService(true)
	store.Questions = []model.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}
	store.Exams = []model.Exam{{ID: "e1", QuestionIDs: []string{"q3", "q1"}}}

	exam, err = remoteSvc.GetExamWithQuestions(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, exam.Questions, 2)
	assert.Equal(t, "q3", exam.Questions[0].ID)
	assert.Equal(t, "q1", exam.Questions[1].ID)

	missing, err = remoteSvc.GetExamWithQuestions(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
