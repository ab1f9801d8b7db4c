package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrail/backend/internal/middleware"
	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/service"
)

type TimeEntryHandler struct {
	entryService *service.TimeEntryService
}

func NewTimeEntryHandler(entryService *service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entryService: entryService}
}

type timeEntryRequest struct {
	ProjectID uint          `json:"project_id" binding:"required"`
	TaskID    *uint         `json:"task_id"`
	Hours     float64       `json:"hours" binding:"required,gt=0"`
	Billable  model.Billing `json:"billable" binding:"required,oneof=billable non_billable"`
	WorkDate  string        `json:"work_date" binding:"required,datetime=2006-01-02"`
	Note      string        `json:"note" binding:"max=5000"`
}

func (r *timeEntryRequest) input() service.TimeEntryInput {
	return service.TimeEntryInput{
		ProjectID: r.ProjectID,
		TaskID:    r.TaskID,
		Hours:     r.Hours,
		Billable:  r.Billable,
		WorkDate:  r.WorkDate,
		Note:      r.Note,
	}
}

func entryFilter(c *gin.Context) service.EntryFilter {
	f := service.EntryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if s := c.Query("project_id"); s != "" {
		v := parseID(s)
		f.ProjectID = &v
	}
	return f
}

// POST /time-entries
func (h *TimeEntryHandler) Create(c *gin.Context) {
	var req timeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	actor := middleware.GetCurrentUser(c)
	entry, err := h.entryService.Create(actor, req.input())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entry)
}

// GET /time-entries
func (h *TimeEntryHandler) List(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)

	entries, err := h.entryService.ListForUser(actor, actor.ID, entryFilter(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entries)
}

// GET /time-entries/stats/summary
func (h *TimeEntryHandler) Stats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	stats, err := h.entryService.Stats(userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stats)
}

// GET /time-entries/user/:id
func (h *TimeEntryHandler) ListForUser(c *gin.Context) {
	targetID := parseID(c.Param("id"))
	actor := middleware.GetCurrentUser(c)

	entries, err := h.entryService.ListForUser(actor, targetID, entryFilter(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entries)
}

// GET /time-entries/project/:id
func (h *TimeEntryHandler) ListForProject(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	actor := middleware.GetCurrentUser(c)

	entries, err := h.entryService.ListForProject(actor, projectID, entryFilter(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entries)
}

// GET /time-entries/:id
func (h *TimeEntryHandler) Get(c *gin.Context) {
	entryID := parseID(c.Param("id"))
	actor := middleware.GetCurrentUser(c)

	entry, err := h.entryService.Get(actor, entryID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entry)
}

// PATCH /time-entries/:id
func (h *TimeEntryHandler) Update(c *gin.Context) {
	entryID := parseID(c.Param("id"))

	var req timeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	actor := middleware.GetCurrentUser(c)
	entry, err := h.entryService.Update(actor, entryID, req.input())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entry)
}

// DELETE /time-entries/:id
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	entryID := parseID(c.Param("id"))

	actor := middleware.GetCurrentUser(c)
	if err := h.entryService.Delete(actor, entryID); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"message": "time entry deleted"})
}
