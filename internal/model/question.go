package model

import "time"

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeEssay          QuestionType = "essay"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeFillBlank      QuestionType = "fill_blank"
)

// Question represents a single question in a subject's bank.
type Question struct {
	ID             string       `json:"id"`
	SubjectID      string       `json:"subject_id"`
	SchoolID       *string      `json:"school_id,omitempty"`
	Question       string       `json:"question"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	CorrectAnswer  string       `json:"correct_answer,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
	Difficulty     string       `json:"difficulty"`
	Topic          string       `json:"topic,omitempty"`
	Marks          int          `json:"marks"`
	TimeAllocation int          `json:"time_allocation"`
	Tags           []string     `json:"tags,omitempty"`
	CreatedBy      *string      `json:"created_by,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Subject        *Subject     `json:"subject,omitempty"`
}

// CreateQuestionRequest is the payload for adding a question to a subject.
type CreateQuestionRequest struct {
	SubjectID      string   `json:"subject_id" binding:"required,uuid"`
	SchoolID       string   `json:"school_id" binding:"omitempty,uuid"`
	Question       string   `json:"question" binding:"required,min=1,max=2000"`
	Type           string   `json:"type" binding:"required,oneof=multiple_choice essay true_false fill_blank"`
	Options        []string `json:"options" binding:"omitempty,dive,max=500"`
	CorrectAnswer  string   `json:"correct_answer" binding:"omitempty,max=500"`
	Explanation    string   `json:"explanation" binding:"omitempty,max=2000"`
	Difficulty     string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Topic          string   `json:"topic" binding:"omitempty,max=255"`
	Marks          int      `json:"marks" binding:"omitempty,min=1,max=100"`
	TimeAllocation int      `json:"time_allocation" binding:"omitempty,min=1"`
	Tags           []string `json:"tags" binding:"omitempty,dive,max=50"`
}
