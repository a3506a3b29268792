//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"appointment-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errServiceGone = errs.Mark(errs.New("service gone"), errs.ErrNotFound)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "marked sentinel", err: errServiceGone, want: errs.ErrNotFound},
		{name: "wrapped marked sentinel", err: errs.Wrap(errServiceGone, "loading service"), want: errs.ErrNotFound},
		{name: "validation helper", err: errs.Validationf("bad %s", "input"), want: errs.ErrValidation},
		{name: "category itself", err: errs.ErrSlotFull, want: errs.ErrSlotFull},
		{name: "plain error", err: errors.New("boom"), want: nil},
		{name: "nil", err: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.Category(tt.err))
		})
	}
}

func TestMarkedErrorKeepsIdentity(t *testing.T) {
	wrapped := errs.Wrap(errServiceGone, "ctx")
	require.ErrorIs(t, wrapped, errServiceGone)
	assert.True(t, errs.Is(wrapped, errs.ErrNotFound))
	assert.False(t, errs.Is(wrapped, errs.ErrConflict))
	assert.Equal(t, "ctx: service gone", wrapped.Error())
}

func TestMarkNilReturnsMarker(t *testing.T) {
	assert.Equal(t, errs.ErrConflict, errs.Mark(nil, errs.ErrConflict))
	assert.NoError(t, errs.Wrap(nil, "noop"))
}

func TestExtractStackLines(t *testing.T) {
	lines := errs.ExtractStackLines(errs.New("boom"), 3)
	assert.Len(t, lines, 3)
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}
