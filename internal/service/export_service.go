package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

var resultHeaders = []string{
	"Student", "Exam", "Subject", "Score", "Total Marks", "Percentage",
	"Grade", "Time Spent (min)", "Submitted At", "Remarks",
}

// ExportService renders domain data as spreadsheets.
type ExportService struct {
	data *DataService
}

// NewExportService creates a new ExportService.
func NewExportService(data *DataService) *ExportService {
	return &ExportService{data: data}
}

// ResultsWorkbook returns the results matching f as an XLSX workbook.
func (s *ExportService) ResultsWorkbook(ctx context.Context, f model.ResultFilter) ([]byte, error) {
	results, err := s.data.ListResults(ctx, f)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	index, err := wb.NewSheet(resultsSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(resultsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, res := range results {
		for c, v := range resultRow(res) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := wb.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func resultRow(r model.Result) []any {
	student, exam, subject := r.StudentID, r.ExamID, r.SubjectID
	if r.Student != nil {
		student = r.Student.Name
	}
	if r.Exam != nil {
		exam = r.Exam.Title
	}
	if r.Subject != nil {
		subject = r.Subject.Name
	}
	return []any{
		student, exam, subject, r.Score, r.TotalMarks, r.Percentage,
		r.Grade, r.TimeSpent / 60, r.SubmittedAt.Format(time.DateTime), r.Remarks,
	}
}
