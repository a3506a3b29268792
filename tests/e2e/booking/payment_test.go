//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"

	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/infra/payment"
	"appointment-booking/internal/pkg/ptr"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/tests/common/dbtest"
	"appointment-booking/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func (s *BookingSuite) initPayment(f fixture, bookingID string) resdto.PaymentResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/payments/checkout?booking_id="+bookingID, nil, "")
	var quote resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &quote)
	require.Equal(s.T(), int64(100000), quote.Price)
	require.Equal(s.T(), int64(10000), quote.Tax)
	require.Equal(s.T(), int64(110000), quote.Total)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/init",
		map[string]any{"booking_id": bookingID, "amount": quote.Total}, f.customerToken)
	var p resdto.PaymentResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &p)
	require.Equal(s.T(), "initiated", p.Status)
	return p
}

func (s *BookingSuite) TestPayments() {
	s.Run("a successful charge confirms the booking", func() {
		f := s.arrange()
		booked := s.book(f, f.at(9, 0))
		p := s.initPayment(f, booked.ID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, fmt.Sprintf("/api/payments/%s/confirm", p.ID),
			reqdto.ConfirmPaymentRequest{Token: "tok_visa"}, "")
		var paid resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &paid)
		require.Equal(s.T(), "succeeded", paid.Status)
		require.NotNil(s.T(), paid.ProviderRef)

		require.Equal(s.T(), 1, dbtest.CountAppointments(s.T(), s.DB, f.serviceID, "confirmed"))
		require.Equal(s.T(), 1, dbtest.CountQueuedNotifications(s.T(), s.DB, commands.TopicPaymentSucceeded))

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, fmt.Sprintf("/api/payments/%s/receipt", p.ID), nil, "")
		var receipt resdto.ReceiptResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &receipt)
		require.Equal(s.T(), int64(110000), receipt.Total)
	})

	s.Run("a declined charge cancels the booking and frees the slot", func() {
		f := s.arrange()
		booked := s.book(f, f.at(9, 30))
		p := s.initPayment(f, booked.ID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, fmt.Sprintf("/api/payments/%s/confirm", p.ID),
			reqdto.ConfirmPaymentRequest{Token: payment.TokenDecline}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "")

		require.Equal(s.T(), 1, dbtest.CountAppointments(s.T(), s.DB, f.serviceID, "cancelled"))
		s.book(f, f.at(9, 30))
	})

	s.Run("a mismatched amount is rejected", func() {
		f := s.arrange()
		booked := s.book(f, f.at(10, 30))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/init",
			reqdto.InitPaymentRequest{BookingID: uuidOf(s, booked.ID), Amount: ptr.To(int64(1))}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	s.Run("a second live payment is a conflict", func() {
		f := s.arrange()
		booked := s.book(f, f.at(11, 30))
		s.initPayment(f, booked.ID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/init",
			reqdto.InitPaymentRequest{BookingID: uuidOf(s, booked.ID)}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("cancelling a paid booking queues a refund", func() {
		f := s.arrange()
		booked := s.book(f, f.at(12, 30))
		p := s.initPayment(f, booked.ID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, fmt.Sprintf("/api/payments/%s/confirm", p.ID),
			reqdto.ConfirmPaymentRequest{Token: "tok_visa"}, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(statusURL, booked.ID),
			reqdto.UpdateStatusRequest{Status: "cancelled"}, f.organiserToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

		require.Equal(s.T(), 1, dbtest.CountQueuedNotifications(s.T(), s.DB, commands.TopicPaymentRefundRequired))
	})
}

func uuidOf(s *BookingSuite, id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	require.NoError(s.T(), err)
	return parsed
}
