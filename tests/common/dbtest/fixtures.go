//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	name := strings.Split(email, "@")[0]
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, full_name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, name, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

type ServiceFixture struct {
	Name            string
	DurationMinutes int
	PriceMinor      *int64
	Published       bool
}

func CreateTestService(t *testing.T, db DBLike, organiserID uuid.UUID, f ServiceFixture) uuid.UUID {
	t.Helper()

	if f.Name == "" {
		f.Name = "Consultation"
	}
	if f.DurationMinutes == 0 {
		f.DurationMinutes = 30
	}

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, organiser_id, name, duration_minutes, price_minor, is_published) VALUES ($1, $2, $3, $4, $5, $6)",
		id, organiserID, f.Name, f.DurationMinutes, f.PriceMinor, f.Published)
	require.NoError(t, err)
	return id
}

// SetWorkingDay stores a weekly window; dayOfWeek uses 0 = Monday.
func SetWorkingDay(t *testing.T, db DBLike, organiserID uuid.UUID, dayOfWeek int, start, end string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO weekly_schedules (organiser_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3::time, $4::time)
		ON CONFLICT (organiser_id, day_of_week) DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time`,
		organiserID, dayOfWeek, start, end)
	require.NoError(t, err)
}

// SetWorkingWeek opens the same window on every day of the week.
func SetWorkingWeek(t *testing.T, db DBLike, organiserID uuid.UUID, start, end string) {
	t.Helper()
	for day := range 7 {
		SetWorkingDay(t, db, organiserID, day, start, end)
	}
}

func CountAppointments(t *testing.T, db DBLike, serviceID uuid.UUID, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM appointments WHERE service_id = $1 AND status = $2", serviceID, status).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountQueuedNotifications(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1 AND status = 'queued'", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
