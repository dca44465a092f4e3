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

// UserHandler lists and creates user profiles.
type UserHandler struct {
	data *service.DataService
}

func NewUserHandler(data *service.DataService) *UserHandler {
	return &UserHandler{data: data}
}

// GetAll godoc
// GET /api/v1/users?role=student&school_id=...
func (h *UserHandler) GetAll(c *gin.Context) {
	var f model.UserFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	var ok bool
	if f.SchoolID, ok = schoolScope(c, f.SchoolID); !ok {
		return
	}

	users, err := h.data.ListUsers(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Create godoc
// POST /api/v1/users
// School admins can only add teachers and students to their own school.
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ident := middleware.GetIdentity(c)
	if ident != nil && ident.Role != model.RoleSuperAdmin &&
		(req.Role == model.RoleSuperAdmin || req.Role == model.RoleSchoolAdmin) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}
	school, ok := schoolScope(c, req.SchoolID)
	if !ok {
		return
	}
	if req.Role.RequiresSchool() && school == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"school_id": "school_id is required for this role"})
		return
	}

	user, err := h.data.CreateUser(c.Request.Context(), userFromRequest(&req, school))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func userFromRequest(req *model.CreateUserRequest, school string) *model.User {
	u := &model.User{
		Email:         req.Email,
		Name:          req.Name,
		Role:          req.Role,
		Phone:         req.Phone,
		Address:       req.Address,
		StudentID:     req.StudentID,
		Class:         req.Class,
		EmployeeID:    req.EmployeeID,
		Department:    req.Department,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		Subjects:      req.Subjects,
		Status:        model.StatusActive,
	}
	if req.Role.RequiresSchool() {
		u.SchoolID = optional(school)
	}
	return u
}
