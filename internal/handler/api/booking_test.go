//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/handler/api"
	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"
	"appointment-booking/tests/common/httptest"
	"appointment-booking/tests/common/testutil"
	commandsmock "appointment-booking/tests/mock/commands"
	queriesmock "appointment-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockBookings  *commandsmock.MockBookingCommands
	mockLifecycle *commandsmock.MockLifecycleCommands
	mockQueries   *queriesmock.MockAppointmentQueries
	handler       *api.BookingHandler
	kolkata       *time.Location
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.router = newEngine()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockLifecycle = commandsmock.NewMockLifecycleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)

	var err error
	s.kolkata, err = time.LoadLocation("Asia/Kolkata")
	s.Require().NoError(err)
	s.handler = api.NewBookingHandler(s.mockBookings, s.mockLifecycle, s.mockQueries, shared.BookingPolicy{Location: s.kolkata})

	s.router.POST("/bookings", fakeAuth(false), s.handler.Create)
	s.router.GET("/appointments", fakeAuth(true), s.handler.List)
	s.router.GET("/appointments/mine", fakeAuth(true), s.handler.ListMine)
	s.router.GET("/appointments/:id", fakeAuth(true), s.handler.Get)
	s.router.PATCH("/appointments/:id/status", fakeAuth(true), s.handler.UpdateStatus)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	view := sampleAppointment()
	reqBody := reqdto.CreateBookingRequest{
		ServiceID:     view.ServiceID,
		StartTime:     view.StartTime,
		CustomerName:  view.CustomerName,
		CustomerEmail: view.CustomerEmail,
	}

	s.Run("success: 201 with Location and times in the business timezone", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), (*shared.Actor)(nil)).
			DoAndReturn(func(_ any, in commands.CreateBookingInput, _ *shared.Actor) (*commands.CreateBookingResult, error) {
				s.Equal("", in.IdempotencyKey)
				s.True(in.StartTime.Equal(view.StartTime))
				return &commands.CreateBookingResult{Appointment: view}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal("pending", body.Status)
		s.False(body.IsReplayed)
		s.Equal("14:30", body.StartTime.In(s.kolkata).Format("15:04"))
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/appointments/" + view.ID.String()})
	})

	s.Run("success: authenticated customer and idempotent replay returns 200", func() {
		customerID := uuid.New()
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), &shared.Actor{UserID: customerID, Role: user.RoleCustomer}).
			DoAndReturn(func(_ any, in commands.CreateBookingInput, _ *shared.Actor) (*commands.CreateBookingResult, error) {
				s.Equal("key-123", in.IdempotencyKey)
				return &commands.CreateBookingResult{Appointment: view, IsReplayed: true}, nil
			})

		req := newJSONRequest(s.T(), http.MethodPost, url, reqBody)
		req.Header.Set("Authorization", "Bearer "+tokenFor(user.RoleCustomer, customerID))
		req.Header.Set("Idempotency-Key", "key-123")
		rec := serve(s.router, req)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.IsReplayed)
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing service_id", mutate: testutil.Field("service_id", nil)},
			{name: "missing start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing customer_name", mutate: testutil.Field("customer_name", nil)},
			{name: "missing customer_email", mutate: testutil.Field("customer_email", nil)},
			{name: "malformed start_time", mutate: testutil.Field("start_time", "tomorrow")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "slot full", commandsError: commands.ErrSlotFull, expectedStatus: http.StatusConflict, expectedMsg: commands.ErrSlotFull.Error()},
			{name: "invalid slot", commandsError: commands.ErrInvalidSlot, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: commands.ErrInvalidSlot.Error()},
			{name: "unknown service", commandsError: commands.ErrServiceNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "service"},
			{name: "key reused", commandsError: commands.ErrIdempotencyKeyReused, expectedStatus: http.StatusConflict},
			{name: "invalid customer", commandsError: appointment.ErrInvalidCustomerName, expectedStatus: http.StatusBadRequest},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.NotContains(rec.Body.String(), "database error")
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	organiserID := uuid.New()
	token := tokenFor(user.RoleOrganiser, organiserID)

	s.Run("success: passes filters and returns counts with next cursor", func() {
		serviceID := uuid.New()
		page := &queries.AppointmentPage{
			Items:        []*queries.AppointmentView{sampleAppointment()},
			StatusCounts: map[string]int64{"pending": 1, "confirmed": 0, "completed": 0, "cancelled": 0},
			Next:         &queries.Cursor{After: "next-page"},
		}
		s.mockQueries.EXPECT().List(gomock.Any(),
			queries.AppointmentListParams{Status: "pending", Date: "2025-03-11", ServiceID: &serviceID},
			&shared.Actor{UserID: organiserID, Role: user.RoleOrganiser},
			&queries.Cursor{After: "abc"},
			50,
		).Return(page, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/appointments?status=pending&date=2025-03-11&service_id="+serviceID.String()+"&after=abc&limit=50", nil, token)

		var body resdto.AppointmentListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Appointments, 1)
		s.Equal("next-page", body.NextCursor)
		s.Equal(int64(1), body.StatusCounts["pending"])
	})

	s.Run("limit is clamped", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), nil, queries.MaxListLimit).
			Return(&queries.AppointmentPage{StatusCounts: map[string]int64{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?limit=5000", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 for malformed uuid filters", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?organiser_id=nope", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid organiser_id")
	})

	s.Run("error: 403 when scoped to another organiser", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrAccessDenied)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?organiser_id="+uuid.NewString(), nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "access denied")
	})

	s.Run("error: 400 for a bad cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidCursor)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?after=zzz", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})
}

// ================================================================================
// TestGet / TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := sampleAppointment()
	token := tokenFor(user.RoleAdmin, uuid.New())

	s.Run("success", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, gomock.Any()).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, token)

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ServiceName, body.ServiceName)
	})

	s.Run("error: 400 for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/invalid-uuid", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 for missing appointment", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, gomock.Any()).Return(nil, queries.ErrAppointmentNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "appointment not found")
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	customerID := uuid.New()
	s.mockQueries.EXPECT().ListMine(gomock.Any(), &shared.Actor{UserID: customerID, Role: user.RoleCustomer}, queries.DefaultListLimit).
		Return([]*queries.AppointmentView{sampleAppointment(), sampleAppointment()}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/mine", nil, tokenFor(user.RoleCustomer, customerID))

	var body []resdto.AppointmentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	view := sampleAppointment()
	url := "/appointments/" + view.ID.String() + "/status"
	organiserID := uuid.New()
	token := tokenFor(user.RoleOrganiser, organiserID)

	s.Run("success", func() {
		confirmed := *view
		confirmed.Status = "confirmed"
		s.mockLifecycle.EXPECT().UpdateStatus(gomock.Any(), view.ID,
			commands.UpdateStatusInput{Status: "confirmed"},
			&shared.Actor{UserID: organiserID, Role: user.RoleOrganiser},
		).Return(&confirmed, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqdto.UpdateStatusRequest{Status: "confirmed"}, token)

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 400 without status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"reason": "x"}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps lifecycle errors", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
		}{
			{name: "invalid transition", err: appointment.ErrInvalidTransition, expectedStatus: http.StatusConflict},
			{name: "unknown status", err: appointment.ErrInvalidStatus, expectedStatus: http.StatusBadRequest},
			{name: "forbidden", err: commands.ErrStatusChangeForbidden, expectedStatus: http.StatusForbidden},
			{name: "missing", err: commands.ErrAppointmentNotFound, expectedStatus: http.StatusNotFound},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockLifecycle.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqdto.UpdateStatusRequest{Status: "completed"}, token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}
