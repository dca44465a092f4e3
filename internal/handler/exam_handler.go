package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/middleware"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/validator"
)

type ExamHandler struct {
	data *service.DataService
}

func NewExamHandler(data *service.DataService) *ExamHandler {
	return &ExamHandler{data: data}
}

// GetAll godoc
// GET /api/v1/exams
func (h *ExamHandler) GetAll(c *gin.Context) {
	var f model.ExamFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	var ok bool
	if f.SchoolID, ok = schoolScope(c, f.SchoolID); !ok {
		return
	}

	exams, err := h.data.ListExams(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetByID godoc
// GET /api/v1/exams/:id
// Returns the exam with its ordered question set. Exams of another school
// read as not found.
func (h *ExamHandler) GetByID(c *gin.Context) {
	scope, ok := schoolScope(c, "")
	if !ok {
		return
	}

	exam, err := h.data.GetExamWithQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if exam == nil || !visibleTo(scope, exam.SchoolID) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	// Students never see the answer key.
	if ident := middleware.GetIdentity(c); ident != nil && ident.Role == model.RoleStudent {
		for i := range exam.Questions {
			exam.Questions[i].CorrectAnswer = ""
			exam.Questions[i].Explanation = ""
		}
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Create godoc
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, ok := schoolScope(c, req.SchoolID)
	if !ok {
		return
	}

	exam := &model.Exam{
		Title:              req.Title,
		SubjectID:          req.SubjectID,
		SchoolID:           optional(school),
		Class:              req.Class,
		Duration:           req.Duration,
		TotalQuestions:     len(req.QuestionIDs),
		TotalMarks:         req.TotalMarks,
		ExamType:           req.ExamType,
		ScheduledDate:      req.ScheduledDate,
		ScheduledTime:      req.ScheduledTime,
		Status:             model.ExamStatusDraft,
		Instructions:       req.Instructions,
		PassingScore:       req.PassingScore,
		RandomizeQuestions: req.RandomizeQuestions,
		AllowReview:        req.AllowReview,
		AutoSubmit:         req.AutoSubmit,
		QuestionIDs:        req.QuestionIDs,
	}
	if ident := middleware.GetIdentity(c); ident != nil {
		exam.CreatedBy = optional(ident.ID)
	}

	created, err := h.data.CreateExam(c.Request.Context(), exam)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": created})
}
