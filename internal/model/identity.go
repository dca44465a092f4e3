package model

import "time"

// Identity is the signed-in user as seen by the session manager. It is also
// the shape persisted as the fixture-mode snapshot.
type Identity struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      Role    `json:"role"`
	School    string  `json:"school,omitempty"`
	SchoolID  string  `json:"school_id,omitempty"`
	Subdomain string  `json:"subdomain,omitempty"`
	Avatar    string  `json:"avatar,omitempty"`
	Profile   Profile `json:"profile"`
}

// IdentityFromUser builds the session identity from a users row and its
// nested school. Columns specific to students and teachers populate the
// matching profile variant; free-form metadata lands in Profile.Extra.
func IdentityFromUser(u *User) *Identity {
	id := &Identity{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Avatar: u.Avatar,
		Profile: Profile{
			Phone:       u.Phone,
			Address:     u.Address,
			Permissions: u.Permissions,
		},
	}
	if !u.CreatedAt.IsZero() {
		id.Profile.JoinDate = u.CreatedAt.UTC().Format(time.DateOnly)
	}
	if u.SchoolID != nil {
		id.SchoolID = *u.SchoolID
	}
	if u.School != nil {
		id.School = u.School.Name
		id.Subdomain = u.School.Subdomain
	}

	switch u.Role {
	case RoleStudent:
		id.Profile.Student = &StudentProfile{
			Class:         u.Class,
			StudentID:     u.StudentID,
			GuardianName:  u.GuardianName,
			GuardianPhone: u.GuardianPhone,
		}
	case RoleTeacher:
		id.Profile.Teacher = &TeacherProfile{
			Subjects:        u.Subjects,
			EmployeeID:      u.EmployeeID,
			Department:      u.Department,
			Qualification:   u.Qualification,
			ClassesAssigned: u.ClassesAssigned,
		}
	}

	if len(u.Metadata) > 0 {
		id.Profile.Extra = make(map[string]any, len(u.Metadata))
		for k, v := range u.Metadata {
			id.Profile.Extra[k] = v
		}
	}
	return id
}
