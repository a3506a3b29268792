package repository

import (
	"context"
	"time"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateNotificationJobParams) error
	ClaimDueNotificationJobs(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ClaimDueNotificationJobsParams) ([]sqlstore.NotificationJobs, error)
	UpdateNotificationJobStatus(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, tx sqlstore.DBTX, job shared.NotificationJob, now time.Time) error {
	id := job.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	runAt := job.RunAt
	if runAt.IsZero() {
		runAt = now
	}
	params := sqlstore.CreateNotificationJobParams{
		ID:        id,
		Kind:      job.Kind,
		Topic:     job.Topic,
		Payload:   job.Payload,
		RunAt:     pgconv.TimeToPgtype(runAt),
		Status:    shared.JobStatusQueued,
		CreatedAt: pgconv.TimeToPgtype(now),
	}

	if err := r.queries.CreateNotificationJob(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks up to limit queued jobs whose run_at has passed. Rows locked by
// another relay are skipped.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx sqlstore.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.queries.ClaimDueNotificationJobs(ctx, tx, sqlstore.ClaimDueNotificationJobsParams{
		RunBefore: pgconv.TimeToPgtype(now),
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:        row.ID,
			Kind:      row.Kind,
			Topic:     row.Topic,
			Payload:   row.Payload,
			RunAt:     pgconv.TimeFromPgtype(row.RunAt),
			Attempts:  int(row.Attempts),
			Status:    row.Status,
			LastError: pgconv.StringPtrFromPgtype(row.LastError),
		}
	}
	return jobs, nil
}

func (r *NotificationRepository) SaveResult(ctx context.Context, tx sqlstore.DBTX, job shared.NotificationJob, now time.Time) error {
	params := sqlstore.UpdateNotificationJobStatusParams{
		ID:        job.ID,
		Status:    job.Status,
		Attempts:  int32(job.Attempts),
		LastError: pgconv.StringPtrToPgtype(job.LastError),
		RunAt:     pgconv.TimeToPgtype(job.RunAt),
		UpdatedAt: pgconv.TimeToPgtype(now),
	}

	if err := r.queries.UpdateNotificationJobStatus(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
