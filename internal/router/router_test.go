package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/fixture"
	"github.com/stemsi/cbity-backend/internal/handler"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/modeflag"
	"github.com/stemsi/cbity-backend/internal/remote/remotetest"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/session"
	"github.com/stemsi/cbity-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    response.ErrCode  `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

type testServer struct {
	engine   *gin.Engine
	sessions *session.Manager
	remote   *remotetest.Store
	auth     *remotetest.Authenticator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	validator.Setup()
	local := localstore.NewMemoryStore()
	flag := modeflag.New(local, zerolog.Nop())
	auth := remotetest.NewAuthenticator()
	rs := remotetest.NewStore()

	sessions := session.NewManager(flag, local, auth, rs, session.Options{}, zerolog.Nop())
	sessions.Start(ctx)
	t.Cleanup(sessions.Close)

	data := service.NewDataService(flag, fixture.New(), rs, zerolog.Nop())
	handlers := &Handlers{
		Auth:      handler.NewAuthHandler(sessions),
		Mode:      handler.NewModeHandler(sessions),
		School:    handler.NewSchoolHandler(data),
		User:      handler.NewUserHandler(data),
		Subject:   handler.NewSubjectHandler(data),
		Question:  handler.NewQuestionHandler(data),
		Exam:      handler.NewExamHandler(data),
		Attempt:   handler.NewAttemptHandler(data),
		Result:    handler.NewResultHandler(data, service.NewExportService(data)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(data)),
		WS:        handler.NewWSHandler(sessions, zerolog.Nop(), nil),
		System: handler.NewSystemHandler(map[string]handler.Pinger{
			"postgres": handler.PingFunc(func(context.Context) error { return nil }),
		}, sessions, zerolog.Nop()),
	}

	engine := SetupRouter(ctx, sessions, handlers, &config.Config{GinMode: gin.TestMode})
	return &testServer{engine: engine, sessions: sessions, remote: rs, auth: auth}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *testServer) login(t *testing.T, email string) {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": session.DemoPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "up", report.Dependencies["postgres"])
}

func TestDataRoutesRequireSignIn(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/api/v1/exams", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrUnauthenticated, env.Error.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "student@lagosmodel.edu.ng", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.ErrInvalidCredentials, env.Error.Code)
}

func TestFixtureExamsAfterLogin(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "student@lagosmodel.edu.ng")

	rec, env := s.do(t, http.MethodGet, "/api/v1/exams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Exams []model.Exam `json:"exams"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Len(t, body.Exams, 5)
	assert.Empty(t, s.remote.Calls())

	rec, env = s.do(t, http.MethodGet, "/api/v1/exams/exam_1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var one struct {
		Exam model.Exam `json:"exam"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &one))
	require.Len(t, one.Exam.Questions, fixture.ExamQuestionCount)
	for _, q := range one.Exam.Questions {
		assert.Empty(t, q.CorrectAnswer)
	}
}

func TestUnknownExamIsNotFound(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "teacher@lagosmodel.edu.ng")
	rec, _ := s.do(t, http.MethodGet, "/api/v1/exams/exam_99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentCannotListSchools(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "student@lagosmodel.edu.ng")
	rec, env := s.do(t, http.MethodGet, "/api/v1/schools", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, response.ErrForbidden, env.Error.Code)
}

func TestCreateInFixtureModeNeedsDatabase(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "admin@lagosmodel.edu.ng")

	rec, env := s.do(t, http.MethodPost, "/api/v1/subjects", gin.H{"name": "Civic Education", "code": "CIV"})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrRemoteModeRequired, env.Error.Code)
	assert.Equal(t, "Database mode required for creating subjects", env.Error.Message)
	assert.False(t, s.remote.Called("CreateSubject"))
}

func TestSignupValidationRunsFirst(t *testing.T) {
	s := newTestServer(t)
	s.sessions.SetMode(context.Background(), true)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"name": "A", "email": "a@b.co", "phone": "1", "schoolName": "S",
		"subdomain": "Not A Domain", "password": "longenough", "confirmPassword": "different",
		"agreeToTerms": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "subdomain")
	assert.Contains(t, env.Error.Fields, "confirmPassword")
	assert.Empty(t, s.remote.Calls())
}

func TestSignupInFixtureMode(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"name": "Ada", "email": "ada@school.ng", "phone": "0801", "schoolName": "Ada School",
		"subdomain": "adaschool", "password": "longenough", "confirmPassword": "longenough",
		"agreeToTerms": true,
	})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, "Signup requires database mode.", env.Error.Message)
}

func TestVerifyInvalidLink(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/api/v1/auth/verify?token=abc&type=recovery", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid verification link.", env.Error.Message)
}

func TestModeSwitchIsSuperAdminOnly(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "teacher@lagosmodel.edu.ng")
	rec, _ := s.do(t, http.MethodPut, "/api/v1/mode", gin.H{"use_database": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, s.sessions.UseDatabase())

	s.login(t, "superadmin@gmail.com")
	rec, env := s.do(t, http.MethodPut, "/api/v1/mode", gin.H{"use_database": true})
	require.Equal(t, http.StatusOK, rec.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.True(t, snap.UseDatabase)
	assert.Nil(t, snap.Identity)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// loginRemote switches to database mode and signs u in against the fake
// backend.
func (s *testServer) loginRemote(t *testing.T, u model.User) {
	t.Helper()
	const password = "pw-remote-1"
	s.remote.Users = append(s.remote.Users, u)
	s.auth.AddAccount(u.ID, u.Email, password)

	s.sessions.SetMode(context.Background(), true)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.sessions.WaitReady(ctx))

	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": u.Email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

const (
	remoteSchoolID = "a1b2c3d4-0000-4000-8000-000000000001"
	otherSchoolID  = "a1b2c3d4-0000-4000-8000-000000000002"
	kidID          = "b1b2c3d4-0000-4000-8000-000000000001"
	victimID       = "b1b2c3d4-0000-4000-8000-000000000002"
)

func TestRemoteErrorMessageIsVerbatim(t *testing.T) {
	s := newTestServer(t)
	schoolID := remoteSchoolID
	s.loginRemote(t, model.User{ID: "u-1", Email: "head@remote.ng", Name: "Head", Role: model.RoleSchoolAdmin, SchoolID: &schoolID})

	s.remote.SetErr("ListExams", errors.New(`permission denied for table exams`))
	rec, env := s.do(t, http.MethodGet, "/api/v1/exams", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, response.ErrRemoteOperationFailed, env.Error.Code)
	assert.Equal(t, "permission denied for table exams", env.Error.Message)
}

func TestResultsExport(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "admin@lagosmodel.edu.ng")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/export", nil)
	req.Header.Set("Accept-Encoding", "br")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestLargeListsAreBrotliCompressed(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "teacher@lagosmodel.edu.ng")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "admin@lagosmodel.edu.ng")

	rec, env := s.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data service.DashboardData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Positive(t, data.Stats.TotalStudents)
	assert.Positive(t, data.Stats.TotalTeachers)
	assert.LessOrEqual(t, len(data.RecentExams), 5)
}

func TestResponsesAreNotCached(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/api/v1/mode", nil)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

// ─── Authorization ───

func remoteStudent(s *testServer, t *testing.T) {
	t.Helper()
	schoolID := remoteSchoolID
	s.remote.Attempts = []model.ExamAttempt{
		{ID: "att-own", StudentID: kidID, Status: model.AttemptStatusInProgress},
		{ID: "att-victim", StudentID: victimID, Status: model.AttemptStatusInProgress},
	}
	s.loginRemote(t, model.User{ID: kidID, Email: "kid@remote.ng", Name: "Kid", Role: model.RoleStudent, SchoolID: &schoolID})
}

func TestStudentCannotPostResults(t *testing.T) {
	s := newTestServer(t)
	remoteStudent(s, t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/results", gin.H{
		"attempt_id":   "c1b2c3d4-0000-4000-8000-000000000001",
		"exam_id":      "c1b2c3d4-0000-4000-8000-000000000002",
		"student_id":   victimID,
		"subject_id":   "c1b2c3d4-0000-4000-8000-000000000003",
		"total_marks":  30,
		"score":        30,
		"percentage":   100,
		"submitted_at": time.Now().UTC(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, response.ErrForbidden, env.Error.Code)
	assert.False(t, s.remote.Called("CreateResult"))
}

func TestStudentAttemptsAreTheirOwn(t *testing.T) {
	s := newTestServer(t)
	remoteStudent(s, t)

	rec, env := s.do(t, http.MethodPatch, "/api/v1/attempts/att-victim", gin.H{"status": "submitted", "score": 0})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, response.ErrForbidden, env.Error.Code)
	assert.False(t, s.remote.Called("UpdateExamAttempt"))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attempts/att-victim/answers", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, s.remote.Called("ListExamAnswers"))

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attempts/att-victim/answers", gin.H{
		"question_id": "d1b2c3d4-0000-4000-8000-000000000001",
		"answer":      "B",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, s.remote.Called("CreateExamAnswer"))

	rec, _ = s.do(t, http.MethodPatch, "/api/v1/attempts/att-own", gin.H{"time_spent": 120})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestStudentAnswersAreNotSelfMarked(t *testing.T) {
	s := newTestServer(t)
	remoteStudent(s, t)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/attempts/att-own/answers", gin.H{
		"question_id": "d1b2c3d4-0000-4000-8000-000000000001",
		"answer":      "B",
		"is_correct":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, s.remote.Answers, 1)
	assert.False(t, s.remote.Answers[0].IsCorrect)
	assert.Equal(t, "att-own", s.remote.Answers[0].AttemptID)
}

func TestExamOfAnotherSchoolIsHidden(t *testing.T) {
	s := newTestServer(t)
	own, other := remoteSchoolID, otherSchoolID
	s.remote.Exams = []model.Exam{
		{ID: "exam-own", Title: "Ours", SchoolID: &own},
		{ID: "exam-other", Title: "Theirs", SchoolID: &other},
		{ID: "exam-shared", Title: "Shared"},
	}
	s.loginRemote(t, model.User{ID: "t-1", Email: "teach@remote.ng", Name: "Teach", Role: model.RoleTeacher, SchoolID: &own})

	rec, _ := s.do(t, http.MethodGet, "/api/v1/exams/exam-other", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/exams/exam-own", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/exams/exam-shared", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaffWithoutSchoolIsForbidden(t *testing.T) {
	s := newTestServer(t)
	s.loginRemote(t, model.User{ID: "t-2", Email: "drifter@remote.ng", Name: "Drifter", Role: model.RoleTeacher})

	for _, path := range []string{"/api/v1/users", "/api/v1/exams", "/api/v1/results", "/api/v1/dashboard"} {
		rec, env := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, response.ErrForbidden, env.Error.Code, path)
	}
	assert.False(t, s.remote.Called("ListUsers"))
	assert.False(t, s.remote.Called("ListExams"))
	assert.False(t, s.remote.Called("ListResults"))
}
