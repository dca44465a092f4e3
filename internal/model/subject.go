package model

import "time"

// Subject represents an academic subject offered by a school.
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Duration    int       `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	SchoolID    *string   `json:"school_id,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// QuestionsCount is derived, never stored.
	QuestionsCount *int `json:"questions_count,omitempty"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Code        string `json:"code" binding:"required,min=2,max=20"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Color       string `json:"color" binding:"omitempty,max=20"`
	Duration    int    `json:"duration" binding:"omitempty,min=1,max=480"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	SchoolID    string `json:"school_id" binding:"omitempty,uuid"`
}
