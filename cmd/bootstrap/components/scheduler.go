package components

import (
	"context"
	"log/slog"

	"appointment-booking/internal/pkg/config"
	"appointment-booking/internal/scheduler"
	"appointment-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(func(*scheduler.Scheduler) {}),
)

func NewScheduler(lc fx.Lifecycle, cfg config.Config, m commands.MaintenanceCommands, logger *slog.Logger) *scheduler.Scheduler {
	s := scheduler.New(scheduler.MaintenanceJobs(m, scheduler.Intervals{
		Sweep:   cfg.Booking.SweepInterval,
		Relay:   cfg.AMQP.RelayInterval,
		Cleanup: cfg.Booking.CleanupEvery,
	}), logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// the hook ctx ends with OnStart; jobs run until Stop
			s.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
	return s
}
