package fixture

import "github.com/stemsi/cbity-backend/internal/model"

// DemoSchoolID is the school every demo record belongs to.
const DemoSchoolID = "550e8400-e29b-41d4-a716-446655440001"

const (
	mathsID     = "660e8400-e29b-41d4-a716-446655440001"
	englishID   = "660e8400-e29b-41d4-a716-446655440002"
	physicsID   = "660e8400-e29b-41d4-a716-446655440003"
	chemistryID = "660e8400-e29b-41d4-a716-446655440004"
	biologyID   = "660e8400-e29b-41d4-a716-446655440005"
	economicsID = "660e8400-e29b-41d4-a716-446655440006"
)

var schools = []model.School{
	{
		ID: DemoSchoolID, Name: "Lagos State Model College", Address: "Ikeja, Lagos State",
		Phone: "+234 802 123 4567", Email: "info@lagosmodel.edu.ng", Website: "https://lagosmodel.edu.ng",
		Established: "1988", Motto: "Knowledge and Service", Subdomain: "lagosmodel",
		Subscription: model.PlanProfessional, Status: model.StatusActive,
	},
	{
		ID: "550e8400-e29b-41d4-a716-446655440002", Name: "Kings College Lagos", Address: "Tafawa Balewa Square, Lagos",
		Phone: "+234 803 555 0101", Email: "admin@kingscollege.edu.ng", Established: "1909", Motto: "Nobilitas Ingenii",
		Subdomain: "kingscollege", Subscription: model.PlanEnterprise, Status: model.StatusActive,
	},
	{
		ID: "550e8400-e29b-41d4-a716-446655440003", Name: "Federal Government College Ijanikin", Address: "Ijanikin, Lagos",
		Phone: "+234 805 700 2020", Email: "contact@fgcijanikin.edu.ng", Established: "1974", Motto: "Unity and Faith",
		Subdomain: "fgcijanikin", Subscription: model.PlanStarter, Status: model.StatusActive,
	},
	{
		ID: "550e8400-e29b-41d4-a716-446655440004", Name: "Queens College Yaba", Address: "Yaba, Lagos",
		Phone: "+234 809 222 3344", Email: "office@queenscollege.edu.ng", Established: "1927", Motto: "Pro Patria",
		Subdomain: "queenscollege", Subscription: model.PlanProfessional, Status: model.StatusPendingVerification,
	},
}

var students = []model.User{
	{ID: "student_1", Email: "student@lagosmodel.edu.ng", Name: "Adebayo Oluwaseun", Role: model.RoleStudent, Class: "SS3A", StudentID: "STD001", Phone: "+234 801 123 4567", GuardianName: "Mr. Oluwaseun Adebayo", Status: model.StatusActive},
	{ID: "student_2", Email: "chioma.okafor@lagosmodel.edu.ng", Name: "Chioma Okafor", Role: model.RoleStudent, Class: "SS3A", StudentID: "STD002", Status: model.StatusActive},
	{ID: "student_3", Email: "ibrahim.musa@lagosmodel.edu.ng", Name: "Ibrahim Musa", Role: model.RoleStudent, Class: "SS3B", StudentID: "STD003", Status: model.StatusActive},
	{ID: "student_4", Email: "funke.adeyemi@lagosmodel.edu.ng", Name: "Funke Adeyemi", Role: model.RoleStudent, Class: "SS2A", StudentID: "STD004", Status: model.StatusActive},
	{ID: "student_5", Email: "emeka.nwosu@lagosmodel.edu.ng", Name: "Emeka Nwosu", Role: model.RoleStudent, Class: "SS2B", StudentID: "STD005", Status: model.StatusActive},
	{ID: "student_6", Email: "aisha.bello@lagosmodel.edu.ng", Name: "Aisha Bello", Role: model.RoleStudent, Class: "SS1A", StudentID: "STD006", Status: model.StatusActive},
	{ID: "student_7", Email: "tunde.bakare@lagosmodel.edu.ng", Name: "Tunde Bakare", Role: model.RoleStudent, Class: "SS1B", StudentID: "STD007", Status: model.StatusSuspended},
	{ID: "student_8", Email: "ngozi.eze@lagosmodel.edu.ng", Name: "Ngozi Eze", Role: model.RoleStudent, Class: "SS3B", StudentID: "STD008", Status: model.StatusActive},
}

var teachers = []model.User{
	{ID: "teacher_1", Email: "teacher@lagosmodel.edu.ng", Name: "Mrs. Adunni Fashola", Role: model.RoleTeacher, EmployeeID: "EMP001", Department: "Sciences", Qualification: "M.Sc Mathematics", Subjects: []string{"Mathematics", "Physics"}, Status: model.StatusActive},
	{ID: "teacher_2", Email: "olu.williams@lagosmodel.edu.ng", Name: "Mr. Olumide Williams", Role: model.RoleTeacher, EmployeeID: "EMP002", Department: "Languages", Qualification: "B.A English", Subjects: []string{"English Language"}, Status: model.StatusActive},
	{ID: "teacher_3", Email: "grace.obi@lagosmodel.edu.ng", Name: "Dr. Grace Obi", Role: model.RoleTeacher, EmployeeID: "EMP003", Department: "Sciences", Qualification: "Ph.D Chemistry", Subjects: []string{"Chemistry", "Biology"}, Status: model.StatusActive},
	{ID: "teacher_4", Email: "yusuf.ahmed@lagosmodel.edu.ng", Name: "Mr. Yusuf Ahmed", Role: model.RoleTeacher, EmployeeID: "EMP004", Department: "Social Sciences", Qualification: "B.Sc Economics", Subjects: []string{"Economics"}, Status: model.StatusActive},
}

var subjects = []model.Subject{
	{ID: mathsID, Name: "Mathematics", Code: "MTH", Description: "General mathematics for senior secondary", Color: "blue", Duration: 120, Difficulty: "medium", Status: model.StatusActive},
	{ID: englishID, Name: "English Language", Code: "ENG", Description: "Comprehension, grammar and essay writing", Color: "green", Duration: 120, Difficulty: "medium", Status: model.StatusActive},
	{ID: physicsID, Name: "Physics", Code: "PHY", Description: "Mechanics, waves and electricity", Color: "purple", Duration: 90, Difficulty: "hard", Status: model.StatusActive},
	{ID: chemistryID, Name: "Chemistry", Code: "CHM", Description: "Physical, organic and inorganic chemistry", Color: "orange", Duration: 90, Difficulty: "hard", Status: model.StatusActive},
	{ID: biologyID, Name: "Biology", Code: "BIO", Description: "Living organisms and ecology", Color: "teal", Duration: 90, Difficulty: "medium", Status: model.StatusActive},
	{ID: economicsID, Name: "Economics", Code: "ECO", Description: "Micro and macro economics", Color: "red", Duration: 60, Difficulty: "easy", Status: model.StatusActive},
}

var questions = []model.Question{
	{ID: "q_1", SubjectID: mathsID, Question: "Simplify 2x + 3x - x.", Type: model.QuestionTypeMultipleChoice, Options: []string{"4x", "5x", "6x", "2x"}, CorrectAnswer: "4x", Difficulty: "easy", Topic: "Algebra", Marks: 2, TimeAllocation: 60},
	{ID: "q_2", SubjectID: mathsID, Question: "Solve for x: 3x - 7 = 11.", Type: model.QuestionTypeMultipleChoice, Options: []string{"4", "5", "6", "7"}, CorrectAnswer: "6", Difficulty: "easy", Topic: "Linear equations", Marks: 2, TimeAllocation: 60},
	{ID: "q_3", SubjectID: mathsID, Question: "What is the value of log10(1000)?", Type: model.QuestionTypeMultipleChoice, Options: []string{"2", "3", "10", "100"}, CorrectAnswer: "3", Difficulty: "medium", Topic: "Logarithms", Marks: 2, TimeAllocation: 60},
	{ID: "q_4", SubjectID: mathsID, Question: "Find the sum of the interior angles of a hexagon.", Type: model.QuestionTypeMultipleChoice, Options: []string{"540°", "720°", "900°", "1080°"}, CorrectAnswer: "720°", Difficulty: "medium", Topic: "Geometry", Marks: 2, TimeAllocation: 90},
	{ID: "q_5", SubjectID: mathsID, Question: "The probability of an impossible event is 0.", Type: model.QuestionTypeTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "True", Difficulty: "easy", Topic: "Probability", Marks: 1, TimeAllocation: 30},
	{ID: "q_6", SubjectID: mathsID, Question: "Differentiate y = 3x² + 2x.", Type: model.QuestionTypeMultipleChoice, Options: []string{"6x + 2", "3x + 2", "6x", "x² + 2"}, CorrectAnswer: "6x + 2", Difficulty: "medium", Topic: "Calculus", Marks: 3, TimeAllocation: 90},
	{ID: "q_7", SubjectID: mathsID, Question: "Express 0.00045 in standard form.", Type: model.QuestionTypeFillBlank, CorrectAnswer: "4.5 × 10⁻⁴", Difficulty: "easy", Topic: "Indices", Marks: 2, TimeAllocation: 60},
	{ID: "q_8", SubjectID: englishID, Question: "Choose the word nearest in meaning to 'candid'.", Type: model.QuestionTypeMultipleChoice, Options: []string{"Frank", "Secretive", "Rude", "Careful"}, CorrectAnswer: "Frank", Difficulty: "easy", Topic: "Vocabulary", Marks: 1, TimeAllocation: 45},
	{ID: "q_9", SubjectID: englishID, Question: "Identify the part of speech of 'quickly' in 'She ran quickly'.", Type: model.QuestionTypeMultipleChoice, Options: []string{"Adjective", "Adverb", "Verb", "Noun"}, CorrectAnswer: "Adverb", Difficulty: "easy", Topic: "Grammar", Marks: 1, TimeAllocation: 45},
	{ID: "q_10", SubjectID: englishID, Question: "Write a short paragraph describing your school.", Type: model.QuestionTypeEssay, Difficulty: "medium", Topic: "Composition", Marks: 10, TimeAllocation: 600},
	{ID: "q_11", SubjectID: physicsID, Question: "What is the SI unit of force?", Type: model.QuestionTypeMultipleChoice, Options: []string{"Joule", "Newton", "Watt", "Pascal"}, CorrectAnswer: "Newton", Difficulty: "easy", Topic: "Mechanics", Marks: 1, TimeAllocation: 30},
	{ID: "q_12", SubjectID: physicsID, Question: "Light travels faster in water than in air.", Type: model.QuestionTypeTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "False", Difficulty: "medium", Topic: "Optics", Marks: 1, TimeAllocation: 30},
	{ID: "q_13", SubjectID: physicsID, Question: "A body of mass 2 kg accelerates at 3 m/s². Find the force.", Type: model.QuestionTypeMultipleChoice, Options: []string{"5 N", "6 N", "1.5 N", "9 N"}, CorrectAnswer: "6 N", Difficulty: "easy", Topic: "Newton's laws", Marks: 2, TimeAllocation: 60},
	{ID: "q_14", SubjectID: chemistryID, Question: "What is the atomic number of carbon?", Type: model.QuestionTypeMultipleChoice, Options: []string{"4", "6", "8", "12"}, CorrectAnswer: "6", Difficulty: "easy", Topic: "Atomic structure", Marks: 1, TimeAllocation: 30},
	{ID: "q_15", SubjectID: chemistryID, Question: "The pH of a neutral solution at 25°C is ____.", Type: model.QuestionTypeFillBlank, CorrectAnswer: "7", Difficulty: "easy", Topic: "Acids and bases", Marks: 1, TimeAllocation: 30},
	{ID: "q_16", SubjectID: biologyID, Question: "Which organelle is the site of photosynthesis?", Type: model.QuestionTypeMultipleChoice, Options: []string{"Mitochondrion", "Chloroplast", "Ribosome", "Nucleus"}, CorrectAnswer: "Chloroplast", Difficulty: "easy", Topic: "Cell biology", Marks: 1, TimeAllocation: 30},
	{ID: "q_17", SubjectID: biologyID, Question: "Explain the process of osmosis.", Type: model.QuestionTypeEssay, Difficulty: "medium", Topic: "Transport", Marks: 5, TimeAllocation: 300},
	{ID: "q_18", SubjectID: economicsID, Question: "Scarcity implies that wants exceed available resources.", Type: model.QuestionTypeTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "True", Difficulty: "easy", Topic: "Basic concepts", Marks: 1, TimeAllocation: 30},
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

var exams = []model.Exam{
	{ID: "exam_1", Title: "SS3 Mathematics Mock Examination", SubjectID: mathsID, Class: "SS3A", Duration: 120, TotalQuestions: 15, TotalMarks: 30, ExamType: "mock", ScheduledDate: "2024-11-12", ScheduledTime: "09:00", Status: model.ExamStatusActive, Instructions: "Answer all questions.", PassingScore: 50, RandomizeQuestions: true, AllowReview: true, AutoSubmit: true, StudentsRegistered: intp(120), StudentsCompleted: intp(87), AverageScore: floatp(72.4)},
	{ID: "exam_2", Title: "English Language First Term Test", SubjectID: englishID, Class: "SS3A", Duration: 90, TotalQuestions: 10, TotalMarks: 20, ExamType: "test", ScheduledDate: "2024-11-15", ScheduledTime: "10:00", Status: model.ExamStatusScheduled, PassingScore: 45, AllowReview: true, AutoSubmit: true, StudentsRegistered: intp(118), StudentsCompleted: intp(0)},
	{ID: "exam_3", Title: "Physics Practical Theory Quiz", SubjectID: physicsID, Class: "SS2A", Duration: 45, TotalQuestions: 10, TotalMarks: 15, ExamType: "quiz", ScheduledDate: "2024-10-28", ScheduledTime: "11:30", Status: model.ExamStatusCompleted, PassingScore: 50, AutoSubmit: true, StudentsRegistered: intp(64), StudentsCompleted: intp(61), AverageScore: floatp(68.9)},
	{ID: "exam_4", Title: "Chemistry Continuous Assessment", SubjectID: chemistryID, Class: "SS2B", Duration: 60, TotalQuestions: 10, TotalMarks: 20, ExamType: "test", ScheduledDate: "2024-11-20", ScheduledTime: "08:30", Status: model.ExamStatusDraft, PassingScore: 50, RandomizeQuestions: true},
	{ID: "exam_5", Title: "Biology Revision Test", SubjectID: biologyID, Class: "SS3B", Duration: 60, TotalQuestions: 10, TotalMarks: 20, ExamType: "test", ScheduledDate: "2024-11-08", ScheduledTime: "12:00", Status: model.ExamStatusActive, PassingScore: 40, AllowReview: true, AutoSubmit: true, StudentsRegistered: intp(75), StudentsCompleted: intp(40), AverageScore: floatp(64.2)},
}

var results = []model.Result{
	{ID: "result_1", AttemptID: "attempt_1", ExamID: "exam_1", StudentID: "student_1", SubjectID: mathsID, Score: 26, TotalMarks: 30, Percentage: 86.7, Grade: "A1", TimeSpent: 5400, Remarks: "Excellent"},
	{ID: "result_2", AttemptID: "attempt_2", ExamID: "exam_1", StudentID: "student_2", SubjectID: mathsID, Score: 21, TotalMarks: 30, Percentage: 70, Grade: "B2", TimeSpent: 6100, Remarks: "Very good"},
	{ID: "result_3", AttemptID: "attempt_3", ExamID: "exam_3", StudentID: "student_4", SubjectID: physicsID, Score: 9, TotalMarks: 15, Percentage: 60, Grade: "C4", TimeSpent: 2500, Remarks: "Credit"},
	{ID: "result_4", AttemptID: "attempt_4", ExamID: "exam_3", StudentID: "student_5", SubjectID: physicsID, Score: 13, TotalMarks: 15, Percentage: 86.7, Grade: "A1", TimeSpent: 2300, Remarks: "Excellent"},
	{ID: "result_5", AttemptID: "attempt_5", ExamID: "exam_5", StudentID: "student_3", SubjectID: biologyID, Score: 11, TotalMarks: 20, Percentage: 55, Grade: "C5", TimeSpent: 3300, Remarks: "Credit"},
	{ID: "result_6", AttemptID: "attempt_6", ExamID: "exam_5", StudentID: "student_8", SubjectID: biologyID, Score: 7, TotalMarks: 20, Percentage: 35, Grade: "F9", TimeSpent: 3500, Remarks: "Needs improvement"},
}
