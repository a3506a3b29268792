package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/handler/api"
	"appointment-booking/internal/handler/middleware"
	"appointment-booking/internal/infra/metrics"
	"appointment-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Auth      *middleware.AuthMiddleware
	Logger    *slog.Logger
	HTTP      *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
	Services  *api.ServiceHandler
	Bookings  *api.BookingHandler
	Schedules *api.ScheduleHandler
	Payments  *api.PaymentHandler
	Users     *api.UserHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery())
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS, p.Logger))
	p.Engine.Use(middleware.RequestLogger(p.Logger))
	if p.Config.Metrics.Enabled {
		p.Engine.Use(middleware.Metrics(p.HTTP))
	}
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	auth := p.Auth

	engine.GET("/health", healthCheck)
	if p.Config.Metrics.Enabled {
		engine.GET(p.Config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))
	}
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	organiser := []gin.HandlerFunc{auth.RequireRole(user.RoleOrganiser)}
	customer := []gin.HandlerFunc{auth.RequireRole(user.RoleCustomer)}

	apiGroup := engine.Group("/api")
	{
		me := apiGroup.Group("/auth")
		me.Use(auth.RequireAuth())
		addRoutes(me, []route{
			{Method: http.MethodGet, Path: "/me", Handler: p.Users.Me},
		})

		services := apiGroup.Group("/services")
		{
			addRoutes(services, []route{
				{Method: http.MethodGet, Path: "", Handler: p.Services.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.Services.Get, Mw: []gin.HandlerFunc{auth.OptionalAuth()}},
				{Method: http.MethodGet, Path: "/:id/slots", Handler: p.Services.ListSlots},
			})

			authed := services.Group("")
			authed.Use(auth.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/mine", Handler: p.Services.ListMine, Mw: organiser},
				{Method: http.MethodPost, Path: "", Handler: p.Services.Create, Mw: organiser},
				{Method: http.MethodPatch, Path: "/:id", Handler: p.Services.Update, Mw: organiser},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.Services.Delete, Mw: organiser},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(auth.OptionalAuth())
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: p.Bookings.Create},
		})

		organisers := apiGroup.Group("/organisers/:id")
		{
			addRoutes(organisers, []route{
				{Method: http.MethodGet, Path: "/schedule", Handler: p.Schedules.GetWeek},
				{Method: http.MethodGet, Path: "/overrides", Handler: p.Schedules.ListOverrides},
			})

			// self-or-admin is enforced in the usecase
			authed := organisers.Group("")
			authed.Use(auth.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPut, Path: "/schedule", Handler: p.Schedules.BulkSet, Mw: organiser},
				{Method: http.MethodPut, Path: "/schedule/days/:day", Handler: p.Schedules.UpsertDay, Mw: organiser},
				{Method: http.MethodDelete, Path: "/schedule/days/:day", Handler: p.Schedules.DeleteDay, Mw: organiser},
				{Method: http.MethodPost, Path: "/overrides", Handler: p.Schedules.AddOverride, Mw: organiser},
				{Method: http.MethodDelete, Path: "/overrides/:date", Handler: p.Schedules.RemoveOverride, Mw: organiser},
			})
		}

		appointments := apiGroup.Group("/appointments")
		appointments.Use(auth.RequireAuth())
		addRoutes(appointments, []route{
			{Method: http.MethodGet, Path: "", Handler: p.Bookings.List, Mw: organiser},
			{Method: http.MethodGet, Path: "/mine", Handler: p.Bookings.ListMine, Mw: customer},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Bookings.Get},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: p.Bookings.UpdateStatus},
		})

		payments := apiGroup.Group("/payments")
		payments.Use(auth.OptionalAuth())
		addRoutes(payments, []route{
			{Method: http.MethodGet, Path: "/checkout", Handler: p.Payments.Checkout},
			{Method: http.MethodPost, Path: "/init", Handler: p.Payments.Init},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Payments.Get},
			{Method: http.MethodGet, Path: "/:id/receipt", Handler: p.Payments.Receipt},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: p.Payments.Confirm},
			{Method: http.MethodPost, Path: "/:id/success", Handler: p.Payments.MarkSuccess},
			{Method: http.MethodPost, Path: "/:id/failure", Handler: p.Payments.MarkFailure},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/users", Handler: p.Users.List},
			{Method: http.MethodPost, Path: "/users", Handler: p.Users.Register},
			{Method: http.MethodDelete, Path: "/users/:id", Handler: p.Users.Delete},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
