package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/session"
	"github.com/stemsi/cbity-backend/internal/validator"
)

// ModeHandler exposes the data-source switch.
type ModeHandler struct {
	sessions *session.Manager
}

func NewModeHandler(sessions *session.Manager) *ModeHandler {
	return &ModeHandler{sessions: sessions}
}

// Get godoc
// GET /api/v1/mode
func (h *ModeHandler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"use_database": h.sessions.UseDatabase()})
}

// Set godoc
// PUT /api/v1/mode
// Switching signs the current user out and restarts session restore.
func (h *ModeHandler) Set(c *gin.Context) {
	var req model.ModeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.sessions.SetMode(c.Request.Context(), *req.UseDatabase)
	response.Success(c, http.StatusOK, h.sessions.Current())
}
