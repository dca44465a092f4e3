package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/dashboard?school_id=...
// Returns headline stats, recent exams and top students of the caller's
// school. Super admins get platform-wide numbers unless they pick a school.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	school, ok := schoolScope(c, c.Query("school_id"))
	if !ok {
		return
	}
	data, err := h.dashboardService.GetDashboardData(c.Request.Context(), school)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}
