//go:build unit

package repository

import (
	"context"
	"testing"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserWriteQueries struct {
	mock.Mock
}

func (m *MockUserWriteQueries) CreateUser(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateUserParams) (sqlstore.Users, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlstore.Users), args.Error(1)
}

func (m *MockUserWriteQueries) DeleteUser(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserWriteQueries) CountUserDependents(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.CountUserDependentsRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlstore.CountUserDependentsRow), args.Error(1)
}

func TestUserRepositoryCreate(t *testing.T) {
	u, err := builder.NewUserBuilder().WithEmail("Owner@Example.com").BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "duplicate email", mockError: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserWriteQueries)
			mockQueries.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlstore.CreateUserParams) bool {
				return p.ID == u.ID() && p.Email == "owner@example.com" && p.Role == string(user.RoleOrganiser)
			})).Return(sqlstore.Users{}, tt.mockError)

			err := NewUserRepository(mockQueries).Create(context.Background(), nil, u)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		affected  int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "missing user", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserWriteQueries)
			mockQueries.On("DeleteUser", mock.Anything, mock.Anything, id).Return(tt.affected, tt.mockError)

			err := NewUserRepository(mockQueries).Delete(context.Background(), nil, id)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestUserRepositoryCountDependents(t *testing.T) {
	id := uuid.New()
	mockQueries := new(MockUserWriteQueries)
	mockQueries.On("CountUserDependents", mock.Anything, mock.Anything, id).Return(sqlstore.CountUserDependentsRow{
		CustomerAppointments: 2,
		Services:             1,
	}, nil)

	deps, err := NewUserRepository(mockQueries).CountDependents(context.Background(), nil, id)

	require.NoError(t, err)
	assert.Equal(t, user.Dependents{CustomerAppointments: 2, Services: 1}, deps)
	assert.True(t, deps.Any())
	mockQueries.AssertExpectations(t)
}
