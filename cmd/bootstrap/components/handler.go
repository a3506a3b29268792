package components

import (
	"appointment-booking/internal/handler"
	"appointment-booking/internal/handler/api"
	"appointment-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewScheduleHandler,
		api.NewServiceHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
