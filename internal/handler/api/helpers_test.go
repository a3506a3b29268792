//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/handler/middleware"
	"appointment-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeAuth stands in for RequireAuth/OptionalAuth: the bearer token is "<role>:<uuid>".
func fakeAuth(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
				return
			}
			c.Next()
			return
		}
		role, rawID, _ := cutToken(header[len("Bearer "):])
		id, err := uuid.Parse(rawID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", id)
		c.Set("user_role", user.Role(role))
		c.Next()
	}
}

func cutToken(token string) (string, string, bool) {
	for i := range token {
		if token[i] == ':' {
			return token[:i], token[i+1:], true
		}
	}
	return token, "", false
}

func tokenFor(role user.Role, id uuid.UUID) string {
	return string(role) + ":" + id.String()
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	return engine
}

func sampleAppointment() *queries.AppointmentView {
	start := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	return &queries.AppointmentView{
		ID:            uuid.New(),
		ServiceID:     uuid.New(),
		ServiceName:   "Consultation",
		OrganiserID:   uuid.New(),
		CustomerName:  "Chris Customer",
		CustomerEmail: "chris@example.com",
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        "pending",
		CreatedAt:     start.Add(-24 * time.Hour),
		UpdatedAt:     start.Add(-24 * time.Hour),
	}
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := nethttptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router *gin.Engine, req *http.Request) *nethttptest.ResponseRecorder {
	rec := nethttptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
