package api

import (
	"net/http"
	"strconv"
	"time"

	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/handler/httperr"
	"appointment-booking/internal/handler/middleware"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	bookings  commands.BookingCommands
	lifecycle commands.LifecycleCommands
	q         queries.AppointmentQueries
	loc       *time.Location
}

func NewBookingHandler(
	bookings commands.BookingCommands,
	lifecycle commands.LifecycleCommands,
	q queries.AppointmentQueries,
	policy shared.BookingPolicy,
) *BookingHandler {
	return &BookingHandler{bookings: bookings, lifecycle: lifecycle, q: q, loc: policy.Location}
}

// @Summary Create booking
// @Description Reserve a slot as a pending appointment. A repeated Idempotency-Key with the same body replays the original result.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key (max 255 chars)"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Idempotent replay"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.bookings.CreateBooking(c.Request.Context(), req.ToInput(c.GetHeader(idempotencyKeyHeader)), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/appointments/"+result.Appointment.ID.String())
	c.JSON(status, resdto.BookingResponse{
		AppointmentResponse: *resdto.FromAppointmentView(result.Appointment, h.loc),
		IsReplayed:          result.IsReplayed,
	})
}

// @Summary List appointments
// @Description Organisers see their own appointments, admins see all. Includes per-status counts.
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param organiser_id query string false "Organiser filter (admin only)"
// @Param status query string false "pending|confirmed|completed|cancelled"
// @Param date query string false "YYYY-MM-DD in the business timezone"
// @Param service_id query string false "Service filter"
// @Param limit query int false "Max items (default 20, max 200)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /appointments [get]
func (h *BookingHandler) List(c *gin.Context) {
	var params queries.AppointmentListParams
	var ok bool
	if params.OrganiserID, ok = optionalUUIDQuery(c, "organiser_id"); !ok {
		return
	}
	if params.ServiceID, ok = optionalUUIDQuery(c, "service_id"); !ok {
		return
	}
	params.Status = c.Query("status")
	params.Date = c.Query("date")

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	page, err := h.q.List(c.Request.Context(), params, middleware.GetActor(c), cursor, limitQuery(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentPage(page, h.loc))
}

// @Summary List my appointments
// @Description Appointments booked by the authenticated customer
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20, max 200)"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 401 {object} httperr.Response
// @Router /appointments/mine [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	items, err := h.q.ListMine(c.Request.Context(), middleware.GetActor(c), limitQuery(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentList(items, h.loc))
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view, h.loc))
}

// @Summary Update appointment status
// @Description Apply a lifecycle transition. Customers may only cancel their own appointments.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateStatusRequest true "Target status"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.lifecycle.UpdateStatus(c.Request.Context(), id, req.ToInput(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view, h.loc))
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery returns (nil, true) when the parameter is absent.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return nil, false
	}
	return &id, true
}

func limitQuery(c *gin.Context) int {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	return limit
}
