package api

import (
	"net/http"

	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/handler/httperr"
	"appointment-booking/internal/handler/middleware"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	cmds  commands.ServiceCommands
	q     queries.ServiceQueries
	slots queries.SlotQueries
}

func NewServiceHandler(cmds commands.ServiceCommands, q queries.ServiceQueries, slots queries.SlotQueries) *ServiceHandler {
	return &ServiceHandler{cmds: cmds, q: q, slots: slots}
}

// @Summary List services
// @Description Published services, optionally for one organiser
// @Tags services
// @Produce json
// @Param organiser_id query string false "Organiser ID"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Router /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	organiserID, ok := optionalUUIDQuery(c, "organiser_id")
	if !ok {
		return
	}
	items, err := h.q.ListPublished(c.Request.Context(), organiserID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceList(items))
}

// @Summary List my services
// @Description The organiser's own services including unpublished ones
// @Tags services
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ServiceResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /services/mine [get]
func (h *ServiceHandler) ListMine(c *gin.Context) {
	items, err := h.q.ListMine(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceList(items))
}

// @Summary Get service
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary Create service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequest true "Create service request"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToInput(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/services/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromServiceView(view))
}

// @Summary Update service
// @Description Partial update; omitted fields keep their values
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body reqdto.UpdateServiceRequest true "Patch"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [patch]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToPatch(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary Delete service
// @Description Rejected while appointments reference the service; unpublish it instead
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, middleware.GetActor(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List slots
// @Description Candidate slots for a service on a date with live booking counts
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Param date query string true "YYYY-MM-DD in the business timezone"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /services/{id}/slots [get]
func (h *ServiceHandler) ListSlots(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "date is required", nil)
		return
	}
	views, err := h.slots.ListSlots(c.Request.Context(), id, date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}
