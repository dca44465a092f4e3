package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/validator"
)

type SubjectHandler struct {
	data *service.DataService
}

func NewSubjectHandler(data *service.DataService) *SubjectHandler {
	return &SubjectHandler{data: data}
}

// GetAll godoc
// GET /api/v1/subjects
func (h *SubjectHandler) GetAll(c *gin.Context) {
	var f model.SubjectFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	var ok bool
	if f.SchoolID, ok = schoolScope(c, f.SchoolID); !ok {
		return
	}

	subjects, err := h.data.ListSubjects(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// Create godoc
// POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, ok := schoolScope(c, req.SchoolID)
	if !ok {
		return
	}

	sub, err := h.data.CreateSubject(c.Request.Context(), &model.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Color:       req.Color,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		SchoolID:    optional(school),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subject": sub})
}
