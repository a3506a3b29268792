//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/handler/api"
	reqdto "appointment-booking/internal/handler/dto/request"
	resdto "appointment-booking/internal/handler/dto/response"
	"appointment-booking/internal/pkg/ptr"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"
	"appointment-booking/tests/common/httptest"
	commandsmock "appointment-booking/tests/mock/commands"
	queriesmock "appointment-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockServiceCommands
	mockQueries  *queriesmock.MockServiceQueries
	mockSlots    *queriesmock.MockSlotQueries
	organiserID  uuid.UUID
}

func (s *ServiceHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockServiceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockServiceQueries(s.mockCtrl)
	s.mockSlots = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.organiserID = uuid.New()

	h := api.NewServiceHandler(s.mockCommands, s.mockQueries, s.mockSlots)
	s.router.GET("/services", h.List)
	s.router.GET("/services/mine", fakeAuth(true), h.ListMine)
	s.router.GET("/services/:id", fakeAuth(false), h.Get)
	s.router.GET("/services/:id/slots", h.ListSlots)
	s.router.POST("/services", fakeAuth(true), h.Create)
	s.router.PATCH("/services/:id", fakeAuth(true), h.Update)
	s.router.DELETE("/services/:id", fakeAuth(true), h.Delete)
}

func (s *ServiceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestServiceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ServiceHandlerTestSuite))
}

func (s *ServiceHandlerTestSuite) view() *queries.ServiceView {
	return &queries.ServiceView{
		ID:              uuid.New(),
		OrganiserID:     &s.organiserID,
		Name:            "Consultation",
		DurationMinutes: 30,
		PriceMinor:      ptr.To(int64(50000)),
		IsPublished:     true,
	}
}

func (s *ServiceHandlerTestSuite) TestListSlots() {
	serviceID := uuid.New()
	url := "/services/" + serviceID.String() + "/slots"

	s.Run("success", func() {
		start := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), serviceID, "2025-03-11").Return([]*queries.SlotView{
			{StartTime: start, EndTime: start.Add(30 * time.Minute), CurrentBookingsCount: 1, Capacity: 1, IsAvailable: false},
			{StartTime: start.Add(30 * time.Minute), EndTime: start.Add(time.Hour), Capacity: 1, IsAvailable: true},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2025-03-11", nil, "")

		var body []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.False(body[0].IsAvailable)
		s.Equal(1, body[0].CurrentBookingsCount)
		s.True(body[1].IsAvailable)
	})

	s.Run("empty day is an empty array", func() {
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), serviceID, "2025-03-16").Return([]*queries.SlotView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2025-03-16", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 400 when date is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "date is required")
	})

	s.Run("error: 400 for a malformed date", func() {
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), serviceID, "11/03/2025").Return(nil, schedule.ErrInvalidDate)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=11/03/2025", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("error: 404 for an unknown service", func() {
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), serviceID, "2025-03-11").Return(nil, queries.ErrServiceNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2025-03-11", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "service not found")
	})
}

func (s *ServiceHandlerTestSuite) TestList() {
	s.Run("filters by organiser", func() {
		s.mockQueries.EXPECT().ListPublished(gomock.Any(), &s.organiserID).Return([]*queries.ServiceView{s.view()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/services?organiser_id="+s.organiserID.String(), nil, "")

		var body []resdto.ServiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(s.organiserID.String(), *body[0].OrganiserID)
	})

	s.Run("mine", func() {
		actor := &shared.Actor{UserID: s.organiserID, Role: user.RoleOrganiser}
		s.mockQueries.EXPECT().ListMine(gomock.Any(), actor).Return([]*queries.ServiceView{s.view(), s.view()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/services/mine", nil, tokenFor(user.RoleOrganiser, s.organiserID))

		var body []resdto.ServiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})
}

func (s *ServiceHandlerTestSuite) TestCreate() {
	token := tokenFor(user.RoleOrganiser, s.organiserID)

	s.Run("success", func() {
		view := s.view()
		s.mockCommands.EXPECT().Create(gomock.Any(), commands.CreateServiceInput{
			Name:            "Consultation",
			DurationMinutes: ptr.To(30),
		}, &shared.Actor{UserID: s.organiserID, Role: user.RoleOrganiser}).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/services",
			reqdto.CreateServiceRequest{Name: "Consultation", DurationMinutes: ptr.To(30)}, token)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/services/" + view.ID.String()})
	})

	s.Run("error: 400 on binding", func() {
		for name, body := range map[string]map[string]any{
			"missing name":  {"duration_minutes": 30},
			"zero duration": {"name": "x", "duration_minutes": 0},
			"negative":      {"name": "x", "price_minor": -1},
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/services", body, token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *ServiceHandlerTestSuite) TestUpdateAndDelete() {
	token := tokenFor(user.RoleOrganiser, s.organiserID)
	id := uuid.New()

	s.Run("partial update keeps omitted fields nil", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, commands.ServicePatch{IsPublished: ptr.To(false)}, gomock.Any()).
			Return(s.view(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/services/"+id.String(), map[string]any{"is_published": false}, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("delete in use is 409", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, gomock.Any()).Return(commands.ErrServiceInUse)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/services/"+id.String(), nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("delete of someone else's service is 403", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, gomock.Any()).Return(commands.ErrServiceForbidden)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/services/"+id.String(), nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("delete success", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, gomock.Any()).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/services/"+id.String(), nil, token)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}
