package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davmoros/cronograma-backend/internal/response"
	"github.com/davmoros/cronograma-backend/internal/service"
	"github.com/davmoros/cronograma-backend/internal/validator"
)

// ReferenceHandler serves the reference catalogs the composer form is
// prefilled from.
type ReferenceHandler struct {
	referenceService *service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

type createProgramRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

type createInstructorRequest struct {
	FullName string `json:"full_name" binding:"required,max=120"`
}

// ListPrograms godoc
// GET /api/v1/reference/programs
func (h *ReferenceHandler) ListPrograms(c *gin.Context) {
	programs, err := h.referenceService.ListPrograms(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"programs": programs})
}

// ListInstructors godoc
// GET /api/v1/reference/instructors
func (h *ReferenceHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.referenceService.ListInstructors(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"instructors": instructors})
}

// CreateProgram godoc
// POST /api/v1/reference/programs
func (h *ReferenceHandler) CreateProgram(c *gin.Context) {
	var req createProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.referenceService.AddProgram(c.Request.Context(), req.Name); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"name": req.Name})
}

// CreateInstructor godoc
// POST /api/v1/reference/instructors
func (h *ReferenceHandler) CreateInstructor(c *gin.Context) {
	var req createInstructorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.referenceService.AddInstructor(c.Request.Context(), req.FullName); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"full_name": req.FullName})
}
