package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/readstore"
	"appointment-booking/internal/infra/repository"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/backoff"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries = 3
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is satisfied by *pgxpool.Pool and by pgxmock pools.
type TxBeginner interface {
	sqlstore.DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool      TxBeginner
	q         *sqlstore.Queries
	logger    *slog.Logger
	retryBase time.Duration
}

func NewPostgresUoW(pool TxBeginner, q *sqlstore.Queries, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:      pool,
		q:         q,
		logger:    logger,
		retryBase: 50 * time.Millisecond,
	}
}

// ReadCommitted is enough here: capacity is guarded by the advisory slot lock.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			u.logger.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.q, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			q:    u.q,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			u.logger.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := backoff.Jittered(attempt, u.retryBase)
		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		if err := backoff.Sleep(ctx, waitTime); err != nil {
			return err
		}
	}

	return errMaxRetriesExceeded
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlstore.DBTX
	q    *sqlstore.Queries

	// Lazy-initialized repositories
	scheduleRepo     shared.ScheduleRepository
	serviceRepo      shared.ServiceRepository
	appointmentRepo  shared.AppointmentRepository
	paymentRepo      shared.PaymentRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	userRepo         shared.UserRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() sqlstore.DBTX {
	return t.dbtx
}

func (t *pgTx) Schedules() shared.ScheduleRepository {
	if t.scheduleRepo == nil {
		t.scheduleRepo = repository.NewScheduleRepository(t.q)
	}
	return t.scheduleRepo
}

func (t *pgTx) Services() shared.ServiceRepository {
	if t.serviceRepo == nil {
		t.serviceRepo = repository.NewServiceRepository(t.q)
	}
	return t.serviceRepo
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	if t.appointmentRepo == nil {
		t.appointmentRepo = repository.NewAppointmentRepository(t.q)
	}
	return t.appointmentRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository(t.q)
	}
	return t.paymentRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.q)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.q)
	}
	return t.notificationRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.q)
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.q, t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	q    *sqlstore.Queries
	dbtx sqlstore.DBTX

	scheduleStore    *readstore.ScheduleReadStore
	idempotencyStore *readstore.IdempotencyReadStore
}

func newCommandReads(q *sqlstore.Queries, dbtx sqlstore.DBTX) *commandReads {
	return &commandReads{
		q:                q,
		dbtx:             dbtx,
		scheduleStore:    readstore.NewScheduleReadStore(q, dbtx),
		idempotencyStore: readstore.NewIdempotencyReadStore(q, dbtx),
	}
}

func (r *commandReads) ServiceByID(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	row, err := r.q.GetServiceByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, wrapLookupErr("service", err)
	}
	return converter.ServiceFromInfra(row), nil
}

func (r *commandReads) ServiceForUpdate(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	row, err := r.q.GetServiceByIDForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, wrapLookupErr("service", err)
	}
	return converter.ServiceFromInfra(row), nil
}

func (r *commandReads) WeekFor(ctx context.Context, organiserID uuid.UUID) (*schedule.Week, error) {
	return r.scheduleStore.FindWeek(ctx, organiserID)
}

func (r *commandReads) HasOverride(ctx context.Context, organiserID uuid.UUID, date schedule.Date) (bool, error) {
	return r.scheduleStore.HasOverride(ctx, organiserID, date)
}

func (r *commandReads) AppointmentForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row, err := r.q.GetAppointmentForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, wrapLookupErr("appointment", err)
	}
	return converter.AppointmentFromInfra(row), nil
}

func (r *commandReads) PaymentForUpdate(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	row, err := r.q.GetPaymentForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, wrapLookupErr("payment", err)
	}
	return converter.PaymentFromInfra(row), nil
}

func (r *commandReads) LivePaymentForBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	row, err := r.q.GetLivePaymentByBooking(ctx, r.dbtx, bookingID)
	if err != nil {
		return nil, wrapLookupErr("live payment", err)
	}
	return converter.PaymentFromInfra(row), nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, endpoint string) (*shared.IdempotencyRecord, error) {
	return r.idempotencyStore.Get(ctx, key, endpoint)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.q.GetUserByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, wrapLookupErr("user", err)
	}
	return converter.UserFromInfra(row), nil
}

func wrapLookupErr(entity string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(entity+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to load "+entity, err)
}
