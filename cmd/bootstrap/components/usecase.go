package components

import (
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/usecase"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewLifecycleUseCase,
		commands.NewPaymentUseCase,
		commands.NewScheduleUseCase,
		commands.NewServiceUseCase,
		commands.NewUserUseCase,
		commands.NewMaintenanceUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAppointmentQueries,
		queries.NewPaymentQueries,
		queries.NewScheduleQueries,
		queries.NewServiceQueries,
		queries.NewSlotQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
