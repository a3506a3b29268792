package api

import (
	"net/http"
	"strconv"

	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/handler/httperr"
	"appointment-booking/internal/handler/middleware"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	cmds commands.ScheduleCommands
	q    queries.ScheduleQueries
}

func NewScheduleHandler(cmds commands.ScheduleCommands, q queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{cmds: cmds, q: q}
}

// @Summary Get weekly schedule
// @Tags schedules
// @Produce json
// @Param id path string true "Organiser ID"
// @Success 200 {object} resdto.WeeklyScheduleResponse
// @Failure 400 {object} httperr.Response
// @Router /organisers/{id}/schedule [get]
func (h *ScheduleHandler) GetWeek(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetWeeklySchedule(c.Request.Context(), organiserID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWeeklyScheduleView(view))
}

// @Summary Replace weekly schedule
// @Description Replaces every weekday entry; days not listed end up without an entry
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organiser ID"
// @Param request body reqdto.BulkScheduleRequest true "Week"
// @Success 200 {object} resdto.WeeklyScheduleResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /organisers/{id}/schedule [put]
func (h *ScheduleHandler) BulkSet(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.BulkScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.BulkSet(c.Request.Context(), organiserID, req.ToInput(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWeeklyScheduleView(view))
}

// @Summary Upsert one schedule day
// @Tags schedules
// @Accept json
// @Security BearerAuth
// @Param id path string true "Organiser ID"
// @Param day path int true "0 (Monday) to 6 (Sunday)"
// @Param request body reqdto.UpsertDayRequest true "Day window"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /organisers/{id}/schedule/days/{day} [put]
func (h *ScheduleHandler) UpsertDay(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req reqdto.UpsertDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpsertDay(c.Request.Context(), organiserID, req.ToInput(day), middleware.GetActor(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete one schedule day
// @Tags schedules
// @Security BearerAuth
// @Param id path string true "Organiser ID"
// @Param day path int true "0 (Monday) to 6 (Sunday)"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /organisers/{id}/schedule/days/{day} [delete]
func (h *ScheduleHandler) DeleteDay(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	if err := h.cmds.DeleteDay(c.Request.Context(), organiserID, day, middleware.GetActor(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List overrides
// @Tags schedules
// @Produce json
// @Param id path string true "Organiser ID"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {array} resdto.OverrideResponse
// @Failure 400 {object} httperr.Response
// @Router /organisers/{id}/overrides [get]
func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.q.ListOverrides(c.Request.Context(), organiserID, c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverrideList(items))
}

// @Summary Add override
// @Description Marks a whole date unavailable
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organiser ID"
// @Param request body reqdto.AddOverrideRequest true "Override"
// @Success 201 {object} resdto.OverrideResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /organisers/{id}/overrides [post]
func (h *ScheduleHandler) AddOverride(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.AddOverride(c.Request.Context(), organiserID, req.Date, req.Reason, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOverrideView(view))
}

// @Summary Remove override
// @Tags schedules
// @Security BearerAuth
// @Param id path string true "Organiser ID"
// @Param date path string true "YYYY-MM-DD"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /organisers/{id}/overrides/{date} [delete]
func (h *ScheduleHandler) RemoveOverride(c *gin.Context) {
	organiserID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.RemoveOverride(c.Request.Context(), organiserID, c.Param("date"), middleware.GetActor(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// range checks happen in the domain
func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid day", nil)
		return 0, false
	}
	return day, true
}
