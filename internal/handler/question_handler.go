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

type QuestionHandler struct {
	data *service.DataService
}

func NewQuestionHandler(data *service.DataService) *QuestionHandler {
	return &QuestionHandler{data: data}
}

// GetAll godoc
// GET /api/v1/questions?subject_id=...
func (h *QuestionHandler) GetAll(c *gin.Context) {
	var f model.QuestionFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	var ok bool
	if f.SchoolID, ok = schoolScope(c, f.SchoolID); !ok {
		return
	}

	questions, err := h.data.ListQuestions(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Create godoc
// POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, ok := schoolScope(c, req.SchoolID)
	if !ok {
		return
	}

	q := &model.Question{
		SubjectID:      req.SubjectID,
		SchoolID:       optional(school),
		Question:       req.Question,
		Type:           model.QuestionType(req.Type),
		Options:        req.Options,
		CorrectAnswer:  req.CorrectAnswer,
		Explanation:    req.Explanation,
		Difficulty:     req.Difficulty,
		Topic:          req.Topic,
		Marks:          req.Marks,
		TimeAllocation: req.TimeAllocation,
		Tags:           req.Tags,
	}
	if ident := middleware.GetIdentity(c); ident != nil {
		q.CreatedBy = optional(ident.ID)
	}

	created, err := h.data.CreateQuestion(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": created})
}
