//go:build unit || e2e

package authtest

import (
	"testing"

	"appointment-booking/internal/domain/user"
	"appointment-booking/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateAndSignIn inserts a user and returns its id with a bearer token for it.
func (h *JWTHelper) CreateAndSignIn(t *testing.T, db dbtest.DBLike, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, email, string(role))
	return id, h.GenerateToken(t, id, role)
}
