//go:build e2e

package booking_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"appointment-booking/internal/domain/user"
	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/pkg/ptr"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/tests/common/dbtest"
	"appointment-booking/tests/common/httptest"
	"appointment-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL = "/api/bookings"
	slotsURL    = "/api/services/%s/slots?date=%s"
	statusURL   = "/api/appointments/%s/status"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type fixture struct {
	organiserID    uuid.UUID
	organiserToken string
	customerID     uuid.UUID
	customerToken  string
	serviceID      uuid.UUID
	day            time.Time
}

// a published 30 minute service with a 09:00-17:00 week, one week out
func (s *BookingSuite) arrange() fixture {
	t := s.T()
	var f fixture
	f.organiserID, f.organiserToken = s.JWT.CreateAndSignIn(t, s.DB, "olivia@example.com", user.RoleOrganiser)
	f.customerID, f.customerToken = s.JWT.CreateAndSignIn(t, s.DB, "chris@example.com", user.RoleCustomer)
	f.serviceID = dbtest.CreateTestService(t, s.DB, f.organiserID, dbtest.ServiceFixture{
		DurationMinutes: 30,
		PriceMinor:      ptr.To(int64(100000)),
		Published:       true,
	})
	dbtest.SetWorkingWeek(t, s.DB, f.organiserID, "09:00", "17:00")

	y, m, d := time.Now().UTC().AddDate(0, 0, 7).Date()
	f.day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return f
}

func (f fixture) at(hour, minute int) time.Time {
	return f.day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func (f fixture) bookingRequest(start time.Time) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ServiceID:     f.serviceID,
		StartTime:     start,
		CustomerName:  "Chris Customer",
		CustomerEmail: "chris@example.com",
	}
}

func (s *BookingSuite) listSlots(f fixture) []resdto.SlotResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		fmt.Sprintf(slotsURL, f.serviceID, f.day.Format(time.DateOnly)), nil, "")
	var slots []resdto.SlotResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &slots)
	return slots
}

func (s *BookingSuite) book(f fixture, start time.Time) resdto.BookingResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(start), f.customerToken)
	var res resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	return res
}

func (s *BookingSuite) TestSlotDiscovery() {
	s.Run("a working day is split into duration-sized slots", func() {
		f := s.arrange()

		slots := s.listSlots(f)

		require.Len(s.T(), slots, 16)
		require.True(s.T(), slots[0].StartTime.Equal(f.at(9, 0)))
		require.True(s.T(), slots[15].EndTime.Equal(f.at(17, 0)))
		for _, sl := range slots {
			require.True(s.T(), sl.IsAvailable)
			require.Equal(s.T(), 1, sl.Capacity)
		}
	})

	s.Run("a booking fills its slot", func() {
		f := s.arrange()
		s.book(f, f.at(10, 0))

		slots := s.listSlots(f)

		idx := 2 // 10:00
		require.Equal(s.T(), 1, slots[idx].CurrentBookingsCount)
		require.False(s.T(), slots[idx].IsAvailable)
		require.True(s.T(), slots[idx+1].IsAvailable)
	})

	s.Run("an override day has no slots", func() {
		f := s.arrange()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/organisers/%s/overrides", f.organiserID),
			reqdto.AddOverrideRequest{Date: f.day.Format(time.DateOnly), Reason: "Conference"}, f.organiserToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)

		require.Empty(s.T(), s.listSlots(f))
	})
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("creates a pending appointment for the customer", func() {
		f := s.arrange()

		res := s.book(f, f.at(9, 30))

		want := resdto.BookingResponse{
			AppointmentResponse: resdto.AppointmentResponse{
				ServiceID:      f.serviceID.String(),
				ServiceName:    "Consultation",
				OrganiserID:    f.organiserID.String(),
				CustomerName:   "Chris Customer",
				CustomerEmail:  "chris@example.com",
				CustomerUserID: ptr.To(f.customerID.String()),
				StartTime:      f.at(9, 30),
				EndTime:        f.at(10, 0),
				Status:         "pending",
			},
		}
		opts := cmp.Options{
			cmpopts.IgnoreFields(resdto.AppointmentResponse{}, "ID", "CreatedAt", "UpdatedAt"),
			cmpopts.EquateApproxTime(time.Second),
		}
		if diff := cmp.Diff(want, res, opts); diff != "" {
			s.T().Errorf("booking mismatch (-want +got):\n%s", diff)
		}
		require.Equal(s.T(), 1, dbtest.CountQueuedNotifications(s.T(), s.DB, commands.TopicAppointmentCreated))
	})

	s.Run("rejects a start that is not on the slot grid", func() {
		f := s.arrange()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(9, 10)), f.customerToken)

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "")
		require.Zero(s.T(), dbtest.CountAppointments(s.T(), s.DB, f.serviceID, "pending"))
	})

	s.Run("rejects a full slot", func() {
		f := s.arrange()
		s.book(f, f.at(11, 0))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(11, 0)), "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("replays an idempotent request", func() {
		f := s.arrange()
		headers := map[string]string{"Idempotency-Key": "booking-" + uuid.NewString()}

		first := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(12, 0)), headers, f.customerToken)
		second := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(12, 0)), headers, f.customerToken)

		var a, b resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), first, http.StatusCreated, &a)
		httptest.AssertSuccessResponse(s.T(), second, http.StatusOK, &b)
		require.Equal(s.T(), a.ID, b.ID)
		require.True(s.T(), b.IsReplayed)
		require.Equal(s.T(), 1, dbtest.CountAppointments(s.T(), s.DB, f.serviceID, "pending"))
	})

	s.Run("the same key with a different body is a conflict", func() {
		f := s.arrange()
		headers := map[string]string{"Idempotency-Key": "booking-" + uuid.NewString()}

		first := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(13, 0)), headers, "")
		second := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(13, 30)), headers, "")

		httptest.AssertSuccessResponse(s.T(), first, http.StatusCreated, nil)
		httptest.AssertErrorResponse(s.T(), second, http.StatusConflict, "")
	})
}

func (s *BookingSuite) TestConcurrentBookingsRespectCapacity() {
	s.Run("only one of many simultaneous requests wins the last seat", func() {
		f := s.arrange()
		body, err := json.Marshal(f.bookingRequest(f.at(14, 0)))
		require.NoError(s.T(), err)

		const attempts = 12
		codes := make([]int, attempts)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := nethttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := nethttptest.NewRecorder()
				<-start
				s.Router.ServeHTTP(w, req)
				codes[i] = w.Code
			}()
		}
		close(start)
		wg.Wait()

		created, conflicts := 0, 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(s.T(), 1, created, "codes: %v", codes)
		require.Equal(s.T(), attempts-1, conflicts, "codes: %v", codes)
		require.Equal(s.T(), 1, dbtest.CountAppointments(s.T(), s.DB, f.serviceID, "pending"))
	})
}

func (s *BookingSuite) TestLifecycle() {
	s.Run("customer cancels and the seat frees up", func() {
		f := s.arrange()
		booked := s.book(f, f.at(15, 0))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(statusURL, booked.ID),
			reqdto.UpdateStatusRequest{Status: "cancelled", Reason: "changed plans"}, f.customerToken)
		var res resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		require.Equal(s.T(), "cancelled", res.Status)

		s.book(f, f.at(15, 0))
	})

	s.Run("customer cannot confirm", func() {
		f := s.arrange()
		booked := s.book(f, f.at(15, 30))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(statusURL, booked.ID),
			reqdto.UpdateStatusRequest{Status: "confirmed"}, f.customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("organiser sees the booking in their list", func() {
		f := s.arrange()
		s.book(f, f.at(16, 0))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/appointments?status=pending", nil, f.organiserToken)
		var list resdto.AppointmentListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list.Appointments, 1)
		require.Equal(s.T(), int64(1), list.StatusCounts["pending"])
	})

	s.Run("guest bookings stay off the customer's own list", func() {
		f := s.arrange()
		signedIn := s.book(f, f.at(9, 0))
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, f.bookingRequest(f.at(9, 30)), "")
		var guest resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &guest)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/appointments/mine", nil, f.customerToken)
		var mine []resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &mine)
		require.Len(s.T(), mine, 1)
		require.Equal(s.T(), signedIn.ID, mine[0].ID)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/appointments/"+guest.ID, nil, f.customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("sweep cancels stale pending bookings", func() {
		f := s.arrange()
		booked := s.book(f, f.at(16, 30))
		_, err := s.DB.Exec(s.T().Context(),
			"UPDATE appointments SET created_at = now() - interval '1 hour' WHERE id = $1", booked.ID)
		require.NoError(s.T(), err)

		n, err := s.Maintenance.SweepExpiredPending(s.T().Context())
		require.NoError(s.T(), err)
		require.Equal(s.T(), 1, n)
		require.Equal(s.T(), 1, dbtest.CountAppointments(s.T(), s.DB, f.serviceID, "cancelled"))
	})
}
