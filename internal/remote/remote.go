// Package remote defines the boundary to the backend the application talks to
// in database mode: a table store and a credential authenticator.
package remote

import (
	"context"
	"time"

	"github.com/stemsi/cbity-backend/internal/model"
)

// Store is the table-level API of the remote backend. List methods never
// return nil slices; an empty result is an empty slice.
type Store interface {
	ListSchools(ctx context.Context) ([]model.School, error)
	CreateSchool(ctx context.Context, s *model.School) (*model.School, error)
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
	UpdateSchoolStatusByOwner(ctx context.Context, ownerID, status string) error

	ListUsers(ctx context.Context, f model.UserFilter) ([]model.User, error)
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	// GetUser loads a user with its school. A missing user is nil, nil.
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUserStatus(ctx context.Context, id, status string) error

	ListSubjects(ctx context.Context, f model.SubjectFilter) ([]model.Subject, error)
	CreateSubject(ctx context.Context, s *model.Subject) (*model.Subject, error)

	ListQuestions(ctx context.Context, f model.QuestionFilter) ([]model.Question, error)
	CreateQuestion(ctx context.Context, q *model.Question) (*model.Question, error)

	ListExams(ctx context.Context, f model.ExamFilter) ([]model.Exam, error)
	// GetExamWithQuestions loads an exam and its ordered questions. A missing
	// exam is nil, nil.
	GetExamWithQuestions(ctx context.Context, id string) (*model.Exam, error)
	CreateExam(ctx context.Context, e *model.Exam) (*model.Exam, error)

	// GetExamAttempt loads one attempt. A missing attempt is nil, nil.
	GetExamAttempt(ctx context.Context, id string) (*model.ExamAttempt, error)
	CreateExamAttempt(ctx context.Context, a *model.ExamAttempt) (*model.ExamAttempt, error)
	UpdateExamAttempt(ctx context.Context, id string, p model.ExamAttemptPatch) (*model.ExamAttempt, error)

	ListExamAnswers(ctx context.Context, f model.AnswerFilter) ([]model.ExamAnswer, error)
	CreateExamAnswer(ctx context.Context, a *model.ExamAnswer) (*model.ExamAnswer, error)

	ListResults(ctx context.Context, f model.ResultFilter) ([]model.Result, error)
	CreateResult(ctx context.Context, r *model.Result) (*model.Result, error)
}

// AuthUser is a credential record of the authenticator.
type AuthUser struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	// Data is the free-form metadata supplied at sign-up.
	Data map[string]any `json:"data,omitempty"`
}

// Session is an authenticated session issued by the authenticator.
type Session struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AuthUser  `json:"user"`
}

// SignUpOptions carries the extras of a sign-up call.
type SignUpOptions struct {
	// RedirectTo is the page the confirmation link lands on.
	RedirectTo string
	Data       map[string]any
}

// AuthEventType enumerates the auth state changes delivered to subscribers.
type AuthEventType string

const (
	EventSignedIn  AuthEventType = "SIGNED_IN"
	EventSignedOut AuthEventType = "SIGNED_OUT"
)

// AuthEvent is one auth state change. Session is nil for EventSignedOut.
type AuthEvent struct {
	Event   AuthEventType `json:"event"`
	Session *Session      `json:"session,omitempty"`
}

// OTPTypeSignup is the verification type carried by sign-up confirmation
// links.
const OTPTypeSignup = "signup"

// Authenticator is the credential side of the remote backend.
type Authenticator interface {
	// GetSession returns the persisted session, or nil when signed out.
	GetSession(ctx context.Context) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string, opts SignUpOptions) (*AuthUser, error)
	SignOut(ctx context.Context) error
	VerifyOTP(ctx context.Context, tokenHash, otpType string) (*AuthUser, error)
	// DeleteUser removes a credential. It is the compensation step of a
	// failed sign-up.
	DeleteUser(ctx context.Context, id string) error
	// Subscribe delivers auth state changes until cancel is called or ctx is
	// done.
	Subscribe(ctx context.Context) (events <-chan AuthEvent, cancel func())
}
