package model

import "time"

// User is a row of the users table, optionally carrying its school.
type User struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	Name            string         `json:"name"`
	Role            Role           `json:"role"`
	SchoolID        *string        `json:"school_id,omitempty"`
	Avatar          string         `json:"avatar,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Address         string         `json:"address,omitempty"`
	DateOfBirth     string         `json:"date_of_birth,omitempty"`
	Gender          string         `json:"gender,omitempty"`
	EmployeeID      string         `json:"employee_id,omitempty"`
	StudentID       string         `json:"student_id,omitempty"`
	Class           string         `json:"class,omitempty"`
	Department      string         `json:"department,omitempty"`
	Qualification   string         `json:"qualification,omitempty"`
	Experience      string         `json:"experience,omitempty"`
	GuardianName    string         `json:"guardian_name,omitempty"`
	GuardianPhone   string         `json:"guardian_phone,omitempty"`
	Subjects        []string       `json:"subjects,omitempty"`
	ClassesAssigned []string       `json:"classes_assigned,omitempty"`
	Permissions     []string       `json:"permissions,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	School          *School        `json:"school,omitempty"`
}

// CreateUserRequest is the payload for adding a user to a school.
type CreateUserRequest struct {
	Email         string   `json:"email" binding:"required,email,max=255"`
	Name          string   `json:"name" binding:"required,min=2,max=255"`
	Role          Role     `json:"role" binding:"required,oneof=super_admin school_admin teacher student"`
	SchoolID      string   `json:"school_id" binding:"omitempty,uuid"`
	Phone         string   `json:"phone" binding:"omitempty,max=50"`
	Address       string   `json:"address" binding:"omitempty,max=500"`
	StudentID     string   `json:"student_id" binding:"omitempty,max=50"`
	Class         string   `json:"class" binding:"omitempty,max=50"`
	EmployeeID    string   `json:"employee_id" binding:"omitempty,max=50"`
	Department    string   `json:"department" binding:"omitempty,max=100"`
	GuardianName  string   `json:"guardian_name" binding:"omitempty,max=255"`
	GuardianPhone string   `json:"guardian_phone" binding:"omitempty,max=50"`
	Subjects      []string `json:"subjects" binding:"omitempty,dive,min=1"`
}
