package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davmoros/cronograma-backend/internal/model"
	"github.com/davmoros/cronograma-backend/internal/repository"
	"github.com/davmoros/cronograma-backend/internal/response"
	"github.com/davmoros/cronograma-backend/internal/service"
	"github.com/davmoros/cronograma-backend/internal/validator"
)

// ScheduleHandler exposes the timetable: class submission, listing, CSV
// export, deletion and the audit trail.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	auditRepo       *repository.AuditRepository
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *service.ScheduleService, auditRepo *repository.AuditRepository) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, auditRepo: auditRepo}
}

// RegularPlanRequest carries the session plan of a regular class: one
// instructor and one time window repeated over the listed dates.
type RegularPlanRequest struct {
	Instructor string   `json:"instructor"`
	StartTime  string   `json:"start_time" binding:"required"`
	EndTime    string   `json:"end_time" binding:"required"`
	Dates      []string `json:"dates" binding:"required,min=1"`
}

// ModulePlanRequest carries one module of a modular class.
type ModulePlanRequest struct {
	Instructor string `json:"instructor"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

// SubmitClassRequest is the payload for composing a new class. Class-level
// business fields are deliberately unbound here: the scheduling engine
// collects every missing-field finding in one pass instead of bouncing the
// user through one binding error at a time.
type SubmitClassRequest struct {
	CatalogCode  string               `json:"catalog_code"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Program      string               `json:"program"`
	Semester     int                  `json:"semester" binding:"required,min=1"`
	Credits      int                  `json:"credits" binding:"required,min=1"`
	Hours        int                  `json:"hours" binding:"required,min=1"`
	Mode         string               `json:"mode" binding:"required,oneof=REGULAR MODULAR"`
	Simultaneous bool                 `json:"simultaneous"`
	Regular      *RegularPlanRequest  `json:"regular,omitempty"`
	Modules      []ModulePlanRequest  `json:"modules,omitempty"`
}

// buildPlan converts the request's session plan into SessionDetail entries,
// reporting unparseable dates/times as field errors.
func (r *SubmitClassRequest) buildPlan() ([]model.SessionDetail, map[string]string) {
	fields := make(map[string]string)

	parseClock := func(field, value string) model.Clock {
		c, err := model.ParseClock(value)
		if err != nil {
			fields[field] = err.Error()
		}
		return c
	}
	parseDate := func(field, value string) model.Date {
		d, err := model.ParseDate(value)
		if err != nil {
			fields[field] = err.Error()
		}
		return d
	}

	var plan []model.SessionDetail
	switch model.ClassMode(r.Mode) {
	case model.ClassModeRegular:
		if r.Regular == nil {
			fields["regular"] = "regular classes require the regular plan block"
			break
		}
		start := parseClock("regular.start_time", r.Regular.StartTime)
		end := parseClock("regular.end_time", r.Regular.EndTime)
		for i, date := range r.Regular.Dates {
			plan = append(plan, model.SessionDetail{
				Instructor: r.Regular.Instructor,
				Date:       parseDate(fmt.Sprintf("regular.dates[%d]", i), date),
				StartTime:  start,
				EndTime:    end,
			})
		}
	case model.ClassModeModular:
		if len(r.Modules) == 0 {
			fields["modules"] = "modular classes require at least one module"
			break
		}
		for i, m := range r.Modules {
			plan = append(plan, model.SessionDetail{
				Instructor: m.Instructor,
				Date:       parseDate(fmt.Sprintf("modules[%d].date", i), m.Date),
				StartTime:  parseClock(fmt.Sprintf("modules[%d].start_time", i), m.StartTime),
				EndTime:    parseClock(fmt.Sprintf("modules[%d].end_time", i), m.EndTime),
			})
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return plan, nil
}

// SubmitClass godoc
// POST /api/v1/schedule/classes
// Validates a composed class against the committed schedule and commits it
// when clean.
func (h *ScheduleHandler) SubmitClass(c *gin.Context) {
	var req SubmitClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	plan, fields := req.buildPlan()
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	class := model.Class{
		CatalogCode:  req.CatalogCode,
		Title:        req.Title,
		Description:  req.Description,
		Program:      req.Program,
		Semester:     req.Semester,
		Credits:      req.Credits,
		Hours:        req.Hours,
		Mode:         model.ClassMode(req.Mode),
		Simultaneous: req.Simultaneous,
	}

	outcome, err := h.scheduleService.Submit(c.Request.Context(), class, plan)
	if err != nil {
		var pe *service.PersistenceError
		if errors.As(err, &pe) {
			response.Fail(c, http.StatusInternalServerError, response.ErrPersistenceFailed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !outcome.Accepted {
		response.FailWithDetails(c, http.StatusConflict, response.ErrScheduleConflict, outcome.Conflicts)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"group_key": class.GroupKey(),
		"sessions":  outcome.Sessions,
	})
}

// ListSessions godoc
// GET /api/v1/schedule/sessions?program=&instructor=&semester=
// Lists committed sessions with optional filters.
func (h *ScheduleHandler) ListSessions(c *gin.Context) {
	program, instructor, semester, ok := parseScheduleFilters(c)
	if !ok {
		return
	}

	sessions, err := h.scheduleService.List(c.Request.Context(), program, instructor, semester)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// ExportCSV godoc
// GET /api/v1/schedule/export?program=&instructor=&semester=
// Streams the (optionally filtered) schedule as a CSV download.
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	program, instructor, semester, ok := parseScheduleFilters(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="cronograma.csv"`)

	if err := h.scheduleService.ExportCSV(c.Request.Context(), c.Writer, program, instructor, semester); err != nil {
		// Headers may already be out; nothing useful left to send.
		c.Abort()
	}
}

// DeleteClass godoc
// DELETE /api/v1/schedule/classes/:group_key
// Removes every session of one class, matching the group key exactly.
func (h *ScheduleHandler) DeleteClass(c *gin.Context) {
	groupKey := c.Param("group_key")
	if groupKey == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	removed, err := h.scheduleService.Delete(c.Request.Context(), groupKey)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		var pe *service.PersistenceError
		if errors.As(err, &pe) {
			response.Fail(c, http.StatusInternalServerError, response.ErrPersistenceFailed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"group_key":        groupKey,
		"sessions_removed": removed,
	})
}

// ListAudit godoc
// GET /api/v1/schedule/audit?limit=
// Returns the most recent schedule mutations, newest first.
func (h *ScheduleHandler) ListAudit(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		limit = n
	}

	entries, err := h.auditRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}

	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

func parseScheduleFilters(c *gin.Context) (program, instructor string, semester *int, ok bool) {
	program = c.Query("program")
	instructor = c.Query("instructor")

	if raw := c.Query("semester"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return "", "", nil, false
		}
		semester = &n
	}
	return program, instructor, semester, true
}
