package service

import (
	"context"
	"math"

	"github.com/stemsi/cbity-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

const dashboardListSize = 5

// DashboardStats are the headline numbers of a school dashboard.
type DashboardStats struct {
	TotalStudents int     `json:"total_students"`
	TotalTeachers int     `json:"total_teachers"`
	ActiveExams   int     `json:"active_exams"`
	AverageScore  float64 `json:"average_score"`
}

// DashboardData consolidates all metrics for the school dashboard.
type DashboardData struct {
	Stats       DashboardStats `json:"stats"`
	RecentExams []model.Exam   `json:"recent_exams"`
	TopStudents []model.User   `json:"top_students"`
}

// DashboardService aggregates dashboard data through the DataService, so it
// follows the active data source.
type DashboardService struct {
	data *DataService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(data *DataService) *DashboardService {
	return &DashboardService{data: data}
}

// GetDashboardData loads students, teachers and exams of schoolID
// concurrently. An empty schoolID covers every school.
func (s *DashboardService) GetDashboardData(ctx context.Context, schoolID string) (*DashboardData, error) {
	var students, teachers []model.User
	var exams []model.Exam

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = s.data.ListUsers(gctx, model.UserFilter{Role: model.RoleStudent, SchoolID: schoolID})
		return err
	})
	g.Go(func() error {
		var err error
		teachers, err = s.data.ListUsers(gctx, model.UserFilter{Role: model.RoleTeacher, SchoolID: schoolID})
		return err
	})
	g.Go(func() error {
		var err error
		exams, err = s.data.ListExams(gctx, model.ExamFilter{SchoolID: schoolID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := 0
	var scoreSum float64
	scored := 0
	for _, e := range exams {
		if e.Status == model.ExamStatusActive {
			active++
		}
		if e.AverageScore != nil {
			scoreSum += *e.AverageScore
			scored++
		}
	}
	avg := 0.0
	if scored > 0 {
		avg = math.Round(scoreSum/float64(scored)*10) / 10
	}

	return &DashboardData{
		Stats: DashboardStats{
			TotalStudents: len(students),
			TotalTeachers: len(teachers),
			ActiveExams:   active,
			AverageScore:  avg,
		},
		RecentExams: exams[:min(dashboardListSize, len(exams))],
		TopStudents: students[:min(dashboardListSize, len(students))],
	}, nil
}
