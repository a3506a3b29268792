package components

import (
	"appointment-booking/internal/infra/readstore"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/infra/uow"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	sqlstore.New,
	NewDBTX,
	NewTxBeginner,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Appointment
		fx.Annotate(
			NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
			fx.As(new(queries.SlotCountStore)),
			fx.As(new(commands.AppointmentViewReader)),
		),
		// Service
		fx.Annotate(
			NewServiceReadStore,
			fx.As(new(queries.ServiceReadStore)),
		),
		// Schedule
		fx.Annotate(
			NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
		),
		// Payment
		fx.Annotate(
			NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
		// User
		fx.Annotate(
			NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

// Write-side repositories are created per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) sqlstore.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}

func NewAppointmentReadStore(q *sqlstore.Queries, db sqlstore.DBTX) *readstore.AppointmentReadStore {
	return readstore.NewAppointmentReadStore(q, db)
}

func NewServiceReadStore(q *sqlstore.Queries, db sqlstore.DBTX) *readstore.ServiceReadStore {
	return readstore.NewServiceReadStore(q, db)
}

func NewScheduleReadStore(q *sqlstore.Queries, db sqlstore.DBTX) *readstore.ScheduleReadStore {
	return readstore.NewScheduleReadStore(q, db)
}

func NewPaymentReadStore(q *sqlstore.Queries, db sqlstore.DBTX) *readstore.PaymentReadStore {
	return readstore.NewPaymentReadStore(q, db)
}

func NewUserReadStore(q *sqlstore.Queries, db sqlstore.DBTX) *readstore.UserReadStore {
	return readstore.NewUserReadStore(q, db)
}
