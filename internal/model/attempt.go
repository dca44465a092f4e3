package model

import "time"

// Attempt statuses.
const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
)

// ExamAttempt is one student's sitting of an exam.
type ExamAttempt struct {
	ID                 string         `json:"id"`
	ExamID             string         `json:"exam_id"`
	StudentID          string         `json:"student_id"`
	StartedAt          time.Time      `json:"started_at"`
	SubmittedAt        *time.Time     `json:"submitted_at,omitempty"`
	TimeSpent          int            `json:"time_spent"`
	Status             string         `json:"status"`
	Score              float64        `json:"score"`
	Percentage         float64        `json:"percentage"`
	Grade              string         `json:"grade,omitempty"`
	QuestionsAttempted int            `json:"questions_attempted"`
	CorrectAnswers     int            `json:"correct_answers"`
	WrongAnswers       int            `json:"wrong_answers"`
	FlaggedQuestions   []int          `json:"flagged_questions"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	Exam               *Exam          `json:"exam,omitempty"`
	Student            *User          `json:"student,omitempty"`
}

// ExamAttemptPatch is a partial update of an attempt. Nil fields are left
// untouched.
type ExamAttemptPatch struct {
	SubmittedAt        *time.Time `json:"submitted_at" binding:"omitempty"`
	TimeSpent          *int       `json:"time_spent" binding:"omitempty,min=0"`
	Status             *string    `json:"status" binding:"omitempty,oneof=in_progress submitted"`
	Score              *float64   `json:"score" binding:"omitempty,min=0"`
	Percentage         *float64   `json:"percentage" binding:"omitempty,min=0,max=100"`
	Grade              *string    `json:"grade" binding:"omitempty,max=5"`
	QuestionsAttempted *int       `json:"questions_attempted" binding:"omitempty,min=0"`
	CorrectAnswers     *int       `json:"correct_answers" binding:"omitempty,min=0"`
	WrongAnswers       *int       `json:"wrong_answers" binding:"omitempty,min=0"`
	FlaggedQuestions   *[]int     `json:"flagged_questions" binding:"omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ExamAttemptPatch) Empty() bool {
	return p.SubmittedAt == nil && p.TimeSpent == nil && p.Status == nil &&
		p.Score == nil && p.Percentage == nil && p.Grade == nil &&
		p.QuestionsAttempted == nil && p.CorrectAnswers == nil &&
		p.WrongAnswers == nil && p.FlaggedQuestions == nil
}

// CreateAttemptRequest is the payload for starting an exam attempt.
type CreateAttemptRequest struct {
	ExamID    string `json:"exam_id" binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// ExamAnswer is a student's answer to one question within an attempt.
type ExamAnswer struct {
	ID         string    `json:"id"`
	AttemptID  string    `json:"attempt_id"`
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"answer,omitempty"`
	IsCorrect  bool      `json:"is_correct"`
	TimeSpent  int       `json:"time_spent"`
	Flagged    bool      `json:"flagged"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Question   *Question `json:"question,omitempty"`
}

// CreateAnswerRequest is the payload for recording an answer.
type CreateAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Answer     string `json:"answer" binding:"omitempty,max=4000"`
	IsCorrect  bool   `json:"is_correct"`
	TimeSpent  int    `json:"time_spent" binding:"omitempty,min=0"`
	Flagged    bool   `json:"flagged"`
}
