package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/middleware"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/validator"
)

// AttemptHandler handles exam attempts and their answers.
type AttemptHandler struct {
	data *service.DataService
}

func NewAttemptHandler(data *service.DataService) *AttemptHandler {
	return &AttemptHandler{data: data}
}

// Create godoc
// POST /api/v1/attempts
// Students always start attempts for themselves.
func (h *AttemptHandler) Create(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	self := ident != nil && ident.Role == model.RoleStudent

	// Pre-filled so students may omit student_id.
	var req model.CreateAttemptRequest
	if self {
		req.StudentID = ident.ID
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if self {
		req.StudentID = ident.ID
	}

	attempt, err := h.data.CreateExamAttempt(c.Request.Context(), &model.ExamAttempt{
		ExamID:    req.ExamID,
		StudentID: req.StudentID,
		StartedAt: time.Now().UTC(),
		Status:    model.AttemptStatusInProgress,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// ownAttempt keeps students to their own attempts. It answers 403 and
// returns false when the attempt belongs to another student. A missing
// attempt passes so the call that follows reports it.
func (h *AttemptHandler) ownAttempt(c *gin.Context, id string) bool {
	ident := middleware.GetIdentity(c)
	if ident == nil || ident.Role != model.RoleStudent {
		return true
	}

	attempt, err := h.data.GetExamAttempt(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return false
	}
	if attempt != nil && attempt.StudentID != ident.ID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return false
	}
	return true
}

// Update godoc
// PATCH /api/v1/attempts/:id
func (h *AttemptHandler) Update(c *gin.Context) {
	var patch model.ExamAttemptPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if patch.Empty() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if !h.ownAttempt(c, c.Param("id")) {
		return
	}

	attempt, err := h.data.UpdateExamAttempt(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	if attempt == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// GetAnswers godoc
// GET /api/v1/attempts/:id/answers
func (h *AttemptHandler) GetAnswers(c *gin.Context) {
	if !h.ownAttempt(c, c.Param("id")) {
		return
	}
	answers, err := h.data.ListExamAnswers(c.Request.Context(), model.AnswerFilter{AttemptID: c.Param("id")})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}

// CreateAnswer godoc
// POST /api/v1/attempts/:id/answers
// Saving the same question twice replaces the earlier answer. Students do
// not mark their own answers.
func (h *AttemptHandler) CreateAnswer(c *gin.Context) {
	var req model.CreateAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if !h.ownAttempt(c, c.Param("id")) {
		return
	}
	if ident := middleware.GetIdentity(c); ident != nil && ident.Role == model.RoleStudent {
		req.IsCorrect = false
	}

	answer, err := h.data.CreateExamAnswer(c.Request.Context(), &model.ExamAnswer{
		AttemptID:  c.Param("id"),
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		IsCorrect:  req.IsCorrect,
		TimeSpent:  req.TimeSpent,
		Flagged:    req.Flagged,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"answer": answer})
}
