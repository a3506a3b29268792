//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"appointment-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 9 * 60, 23*60 + 59} {
		assert.Equal(t, m, pgconv.MinutesFromPgTime(pgconv.MinutesToPgTime(m)))
	}
	assert.Equal(t, 0, pgconv.MinutesFromPgTime(pgconv.MinutesToPgTime(0)))
}

func TestDateToPgtypeDropsClock(t *testing.T) {
	in := time.Date(2025, 3, 10, 23, 30, 0, 0, time.FixedZone("IST", 19800))
	got := pgconv.DateToPgtype(in)
	assert.True(t, got.Valid)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got.Time)
}

func TestNullableHelpers(t *testing.T) {
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))
	id := uuid.New()
	assert.Equal(t, id, *pgconv.UUIDPtrFromPgtype(pgconv.UUIDToPgtype(id)))

	assert.Nil(t, pgconv.Int8PtrFromPgtype(pgconv.Int8PtrToPgtype(nil)))
	v := int64(1500)
	assert.Equal(t, v, *pgconv.Int8PtrFromPgtype(pgconv.Int8PtrToPgtype(&v)))

	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(nil)))
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(errors.New("x")))

	assert.Equal(t, "23505", pgconv.PgErrorCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, "", pgconv.PgErrorCode(errors.New("x")))
}
