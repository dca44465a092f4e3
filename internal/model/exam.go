package model

import (
	"encoding/json"
	"time"
)

// ExamStatus enumerates the possible states of an exam.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusScheduled ExamStatus = "scheduled"
	ExamStatusActive    ExamStatus = "active"
	ExamStatusCompleted ExamStatus = "completed"
)

// Exam represents an exam entity. Questions is only populated when the exam
// is fetched together with its question set; the student counters and the
// average score are derived from attempts.
type Exam struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	SubjectID          string          `json:"subject_id"`
	SchoolID           *string         `json:"school_id,omitempty"`
	Class              string          `json:"class,omitempty"`
	Duration           int             `json:"duration"`
	TotalQuestions     int             `json:"total_questions"`
	TotalMarks         int             `json:"total_marks"`
	ExamType           string          `json:"exam_type"`
	ScheduledDate      string          `json:"scheduled_date,omitempty"`
	ScheduledTime      string          `json:"scheduled_time,omitempty"`
	Status             ExamStatus      `json:"status"`
	Instructions       string          `json:"instructions,omitempty"`
	PassingScore       int             `json:"passing_score"`
	RandomizeQuestions bool            `json:"randomize_questions"`
	AllowReview        bool            `json:"allow_review"`
	AutoSubmit         bool            `json:"auto_submit"`
	CreatedBy          *string         `json:"created_by,omitempty"`
	Settings           json.RawMessage `json:"settings,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Subject            *Subject        `json:"subject,omitempty"`
	Questions          []Question      `json:"questions,omitempty"`
	StudentsRegistered *int            `json:"students_registered,omitempty"`
	StudentsCompleted  *int            `json:"students_completed,omitempty"`
	AverageScore       *float64        `json:"average_score,omitempty"`
	// QuestionIDs links questions through exam_questions on create. It is
	// never read back.
	QuestionIDs []string `json:"-"`
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Title              string   `json:"title" binding:"required,min=3,max=255"`
	SubjectID          string   `json:"subject_id" binding:"required,uuid"`
	SchoolID           string   `json:"school_id" binding:"omitempty,uuid"`
	Class              string   `json:"class" binding:"omitempty,max=50"`
	Duration           int      `json:"duration" binding:"required,min=1,max=480"`
	TotalMarks         int      `json:"total_marks" binding:"omitempty,min=1"`
	ExamType           string   `json:"exam_type" binding:"omitempty,max=50"`
	ScheduledDate      string   `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime      string   `json:"scheduled_time" binding:"omitempty,datetime=15:04"`
	Instructions       string   `json:"instructions" binding:"omitempty,max=4000"`
	PassingScore       int      `json:"passing_score" binding:"omitempty,min=0,max=100"`
	RandomizeQuestions bool     `json:"randomize_questions"`
	AllowReview        bool     `json:"allow_review"`
	AutoSubmit         bool     `json:"auto_submit"`
	QuestionIDs        []string `json:"question_ids" binding:"omitempty,dive,uuid"`
}
