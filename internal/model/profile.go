package model

import (
	"errors"
	"fmt"
)

// ErrProfileMismatch is returned when a profile carries a variant that does not
// belong to the identity's role.
var ErrProfileMismatch = errors.New("profile variant does not match role")

// Profile holds the descriptive attributes of an identity. The common fields
// are shared by all roles; Student and Teacher are role-specific variants and
// at most one of them is set. Extra keeps any attribute the schema does not
// know about.
type Profile struct {
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	JoinDate    string          `json:"joinDate,omitempty"`
	Permissions []string        `json:"permissions,omitempty"`
	Student     *StudentProfile `json:"student,omitempty"`
	Teacher     *TeacherProfile `json:"teacher,omitempty"`
	Extra       map[string]any  `json:"extra,omitempty"`
}

// StudentProfile is the student variant of Profile.
type StudentProfile struct {
	Class         string `json:"class"`
	StudentID     string `json:"studentId"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
}

// TeacherProfile is the teacher variant of Profile.
type TeacherProfile struct {
	Subjects        []string `json:"subjects"`
	EmployeeID      string   `json:"employeeId,omitempty"`
	Department      string   `json:"department,omitempty"`
	Qualification   string   `json:"qualification,omitempty"`
	ClassesAssigned []string `json:"classesAssigned,omitempty"`
}

// Validate checks that the profile carries the variant required by role and
// no variant belonging to another role.
func (p *Profile) Validate(role Role) error {
	switch role {
	case RoleStudent:
		if p.Teacher != nil {
			return ErrProfileMismatch
		}
		if p.Student == nil {
			return fmt.Errorf("student profile is required")
		}
		if p.Student.Class == "" || p.Student.StudentID == "" {
			return fmt.Errorf("student profile requires class and studentId")
		}
	case RoleTeacher:
		if p.Student != nil {
			return ErrProfileMismatch
		}
		if p.Teacher == nil || len(p.Teacher.Subjects) == 0 {
			return fmt.Errorf("teacher profile requires at least one subject")
		}
	case RoleSuperAdmin, RoleSchoolAdmin:
		if p.Student != nil || p.Teacher != nil {
			return ErrProfileMismatch
		}
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}
