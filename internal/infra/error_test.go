//go:build unit

package infra

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErrClassifies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind []RepositoryErrorKind
		want RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: KindConflict},
		{name: "anything else", err: assert.AnError, want: KindDBFailure},
		{name: "explicit kind wins", err: assert.AnError, kind: []RepositoryErrorKind{KindNotFound}, want: KindNotFound},
		{name: "nil error with kind", err: nil, kind: []RepositoryErrorKind{KindConflict}, want: KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("op failed", tt.err, tt.kind...)
			assert.True(t, IsKind(err, tt.want), "got %v", err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestIsKindOnForeignError(t *testing.T) {
	assert.False(t, IsKind(assert.AnError, KindNotFound))
}
