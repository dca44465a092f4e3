package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/middleware"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultHandler struct {
	data   *service.DataService
	export *service.ExportService
}

func NewResultHandler(data *service.DataService, export *service.ExportService) *ResultHandler {
	return &ResultHandler{data: data, export: export}
}

// resultFilter binds the query and confines it to what the caller may see:
// students only their own results, staff only their school.
// The bool is false once a response has been written.
func resultFilter(c *gin.Context) (model.ResultFilter, bool) {
	var f model.ResultFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return f, false
	}
	var ok bool
	if f.SchoolID, ok = schoolScope(c, f.SchoolID); !ok {
		return f, false
	}
	if ident := middleware.GetIdentity(c); ident != nil && ident.Role == model.RoleStudent {
		f.StudentID = ident.ID
	}
	return f, true
}

// GetAll godoc
// GET /api/v1/results
func (h *ResultHandler) GetAll(c *gin.Context) {
	f, ok := resultFilter(c)
	if !ok {
		return
	}

	results, err := h.data.ListResults(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// Create godoc
// POST /api/v1/results
// Restricted to staff by the router.
func (h *ResultHandler) Create(c *gin.Context) {
	var req model.CreateResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, ok := schoolScope(c, req.SchoolID)
	if !ok {
		return
	}

	result, err := h.data.CreateResult(c.Request.Context(), &model.Result{
		AttemptID:   req.AttemptID,
		ExamID:      req.ExamID,
		StudentID:   req.StudentID,
		SubjectID:   req.SubjectID,
		SchoolID:    optional(school),
		Score:       req.Score,
		TotalMarks:  req.TotalMarks,
		Percentage:  req.Percentage,
		Grade:       req.Grade,
		TimeSpent:   req.TimeSpent,
		SubmittedAt: req.SubmittedAt,
		Remarks:     req.Remarks,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// Export godoc
// GET /api/v1/results/export
// Downloads the filtered results as an XLSX workbook.
func (h *ResultHandler) Export(c *gin.Context) {
	f, ok := resultFilter(c)
	if !ok {
		return
	}

	body, err := h.export.ResultsWorkbook(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	filename := fmt.Sprintf("results-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	response.Bytes(c, filename, xlsxContentType, body)
}
