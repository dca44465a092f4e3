package model

// Filters narrow list operations. An empty field adds no predicate; set
// fields are matched by equality and combined with AND.

type UserFilter struct {
	Role     Role   `json:"role" form:"role" binding:"omitempty,oneof=super_admin school_admin teacher student"`
	SchoolID string `json:"school_id" form:"school_id" binding:"omitempty,uuid"`
}

type SubjectFilter struct {
	SchoolID string `json:"school_id" form:"school_id" binding:"omitempty,uuid"`
}

type QuestionFilter struct {
	SubjectID string `json:"subject_id" form:"subject_id"`
	SchoolID  string `json:"school_id" form:"school_id" binding:"omitempty,uuid"`
}

type ExamFilter struct {
	SchoolID string `json:"school_id" form:"school_id" binding:"omitempty,uuid"`
}

type AnswerFilter struct {
	AttemptID string `json:"attempt_id" form:"attempt_id"`
}

type ResultFilter struct {
	StudentID string `json:"student_id" form:"student_id"`
	SchoolID  string `json:"school_id" form:"school_id" binding:"omitempty,uuid"`
}
