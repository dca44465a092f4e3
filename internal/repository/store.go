package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles every table repository into the single remote store the data
// facade talks to in database mode.
type Store struct {
	*SchoolRepository
	*UserRepository
	*SubjectRepository
	*QuestionRepository
	*ExamRepository
	*AttemptRepository
	*AnswerRepository
	*ResultRepository
}

// NewStore creates a Store over pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		SchoolRepository:   NewSchoolRepository(pool),
		UserRepository:     NewUserRepository(pool),
		SubjectRepository:  NewSubjectRepository(pool),
		QuestionRepository: NewQuestionRepository(pool),
		ExamRepository:     NewExamRepository(pool),
		AttemptRepository:  NewAttemptRepository(pool),
		AnswerRepository:   NewAnswerRepository(pool),
		ResultRepository:   NewResultRepository(pool),
	}
}
