package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/validator"
)

type SchoolHandler struct {
	data *service.DataService
}

func NewSchoolHandler(data *service.DataService) *SchoolHandler {
	return &SchoolHandler{data: data}
}

// GetAll godoc
// GET /api/v1/schools
func (h *SchoolHandler) GetAll(c *gin.Context) {
	schools, err := h.data.ListSchools(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schools": schools})
}

// Create godoc
// POST /api/v1/schools
func (h *SchoolHandler) Create(c *gin.Context) {
	var req model.CreateSchoolRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	school, err := h.data.CreateSchool(c.Request.Context(), &model.School{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		Motto:        req.Motto,
		Subdomain:    req.Subdomain,
		Subscription: req.Subscription,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"school": school})
}
