package api

import (
	"net/http"
	"time"

	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/handler/httperr"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
	loc  *time.Location
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries, policy shared.BookingPolicy) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q, loc: policy.Location}
}

// @Summary Checkout quote
// @Description Server-side price, tax and total for a booking
// @Tags payments
// @Produce json
// @Param booking_id query string true "Booking ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/checkout [get]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	bookingID, ok := optionalUUIDQuery(c, "booking_id")
	if !ok {
		return
	}
	if bookingID == nil {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "booking_id is required", nil)
		return
	}
	view, err := h.q.Checkout(c.Request.Context(), *bookingID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutView(view, h.loc))
}

// @Summary Init payment
// @Description Creates an initiated payment for a pending booking. amount, when sent, must equal the quoted total.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.InitPaymentRequest true "Init payment request"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/init [post]
func (h *PaymentHandler) Init(c *gin.Context) {
	var req reqdto.InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Init(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/payments/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromPaymentView(view))
}

// @Summary Confirm payment
// @Description Charges the provider. A failed charge cancels the booking and returns 502.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body reqdto.ConfirmPaymentRequest true "Provider token"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/{id}/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Confirm(c.Request.Context(), id, req.Token)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Payment success callback
// @Description Idempotent: a repeated success returns the stored record
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body reqdto.PaymentSuccessRequest true "Provider reference"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/success [post]
func (h *PaymentHandler) MarkSuccess(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.PaymentSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.MarkSuccess(c.Request.Context(), id, req.ProviderRef)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Payment failure callback
// @Description Idempotent: a repeated failure returns the stored record
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body reqdto.PaymentFailureRequest false "Failure reason"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/failure [post]
func (h *PaymentHandler) MarkFailure(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.PaymentFailureRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	view, err := h.cmds.MarkFailure(c.Request.Context(), id, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Get payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Get receipt
// @Description Itemized receipt; only for succeeded payments
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.ReceiptResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Receipt(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReceiptView(view, h.loc))
}
