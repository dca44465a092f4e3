package session

import (
	"github.com/stemsi/cbity-backend/internal/fixture"
	"github.com/stemsi/cbity-backend/internal/model"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "password123"

const demoSchoolName = "Lagos State Model College"

var demoUsers = map[string]model.Identity{
	"superadmin@gmail.com": {
		ID:     "super_admin_1",
		Email:  "superadmin@gmail.com",
		Name:   "Super Administrator",
		Role:   model.RoleSuperAdmin,
		Avatar: "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2",
		Profile: model.Profile{
			Phone:       "+234 806 946 2143",
			Address:     "Lagos, Nigeria",
			JoinDate:    "2024-01-01",
			Permissions: []string{"all"},
		},
	},
	"admin@lagosmodel.edu.ng": {
		ID:        "school_admin_1",
		Email:     "admin@lagosmodel.edu.ng",
		Name:      "Dr. Adebayo Olumide",
		Role:      model.RoleSchoolAdmin,
		School:    demoSchoolName,
		SchoolID:  fixture.DemoSchoolID,
		Subdomain: "lagosmodel",
		Avatar:    "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2",
		Profile: model.Profile{
			Phone:       "+234 802 123 4567",
			Address:     "Ikeja, Lagos State",
			JoinDate:    "2024-02-01",
			Permissions: []string{"school_management"},
		},
	},
	"teacher@lagosmodel.edu.ng": {
		ID:        "teacher_1",
		Email:     "teacher@lagosmodel.edu.ng",
		Name:      "Mrs. Adunni Fashola",
		Role:      model.RoleTeacher,
		School:    demoSchoolName,
		SchoolID:  fixture.DemoSchoolID,
		Subdomain: "lagosmodel",
		Avatar:    "https://images.pexels.com/photos/2381069/pexels-photo-2381069.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2",
		Profile: model.Profile{
			Phone:       "+234 811 123 4567",
			Address:     "Lekki, Lagos",
			JoinDate:    "2024-03-01",
			Permissions: []string{"exam_management"},
			Teacher:     &model.TeacherProfile{Subjects: []string{"Mathematics", "Physics"}},
		},
	},
	"student@lagosmodel.edu.ng": {
		ID:        "student_1",
		Email:     "student@lagosmodel.edu.ng",
		Name:      "Adebayo Oluwaseun",
		Role:      model.RoleStudent,
		School:    demoSchoolName,
		SchoolID:  fixture.DemoSchoolID,
		Subdomain: "lagosmodel",
		Avatar:    "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2",
		Profile: model.Profile{
			Phone:       "+234 801 123 4567",
			Address:     "Ikeja, Lagos",
			JoinDate:    "2024-09-01",
			Permissions: []string{"exam_taking"},
			Student:     &model.StudentProfile{Class: "SS3A", StudentID: "STD001"},
		},
	},
}

// demoIdentity returns a copy of the demo identity for an exact credential
// pair.
func demoIdentity(email, password string) (*model.Identity, bool) {
	u, ok := demoUsers[email]
	if !ok || password != DemoPassword {
		return nil, false
	}
	u.Profile.Permissions = append([]string(nil), u.Profile.Permissions...)
	if u.Profile.Teacher != nil {
		t := *u.Profile.Teacher
		t.Subjects = append([]string(nil), t.Subjects...)
		u.Profile.Teacher = &t
	}
	if u.Profile.Student != nil {
		st := *u.Profile.Student
		u.Profile.Student = &st
	}
	return &u, true
}

// DemoEmails lists the demo accounts in a stable order.
func DemoEmails() []string {
	out := make([]string, 0, len(demoUsers))
	for _, role := range model.AllRoles {
		for email, u := range demoUsers {
			if u.Role == role {
				out = append(out, email)
			}
		}
	}
	return out
}
