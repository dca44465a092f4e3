package model

import (
	"encoding/json"
	"time"
)

// Result is the denormalized projection of a submitted attempt.
type Result struct {
	ID          string          `json:"id"`
	AttemptID   string          `json:"attempt_id"`
	ExamID      string          `json:"exam_id"`
	StudentID   string          `json:"student_id"`
	SubjectID   string          `json:"subject_id"`
	SchoolID    *string         `json:"school_id,omitempty"`
	Score       float64         `json:"score"`
	TotalMarks  int             `json:"total_marks"`
	Percentage  float64         `json:"percentage"`
	Grade       string          `json:"grade,omitempty"`
	TimeSpent   int             `json:"time_spent"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Remarks     string          `json:"remarks,omitempty"`
	Analytics   json.RawMessage `json:"analytics,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Exam        *Exam           `json:"exam,omitempty"`
	Student     *User           `json:"student,omitempty"`
	Subject     *Subject        `json:"subject,omitempty"`
}

// CreateResultRequest is the payload for recording a result.
type CreateResultRequest struct {
	AttemptID   string    `json:"attempt_id" binding:"required,uuid"`
	ExamID      string    `json:"exam_id" binding:"required,uuid"`
	StudentID   string    `json:"student_id" binding:"required,uuid"`
	SubjectID   string    `json:"subject_id" binding:"required,uuid"`
	SchoolID    string    `json:"school_id" binding:"omitempty,uuid"`
	Score       float64   `json:"score" binding:"min=0"`
	TotalMarks  int       `json:"total_marks" binding:"required,min=1"`
	Percentage  float64   `json:"percentage" binding:"min=0,max=100"`
	Grade       string    `json:"grade" binding:"omitempty,max=5"`
	TimeSpent   int       `json:"time_spent" binding:"min=0"`
	SubmittedAt time.Time `json:"submitted_at" binding:"required"`
	Remarks     string    `json:"remarks" binding:"omitempty,max=1000"`
}
