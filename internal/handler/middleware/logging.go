package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"appointment-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	ctxRequestIDKey = "request_id"
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// resourceParams maps a route prefix to the log attribute for its :id param.
var resourceParams = []struct {
	prefix string
	attr   string
}{
	{"/api/services/:id", "service_id"},
	{"/api/organisers/:id", "organiser_id"},
	{"/api/appointments/:id", "appointment_id"},
	{"/api/payments/:id", "payment_id"},
	{"/api/admin/users/:id", "target_user_id"},
}

// RequestLogger logs one line per request. Identity and route attributes are
// read after the handler chain, once auth has run and the route is matched.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := incomingRequestID(c)
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		statusCode := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status_code", statusCode),
			slog.Duration("duration", time.Since(startTime)),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}
		attrs = append(attrs, bookingAttrs(c)...)
		if actor := GetActor(c); actor != nil {
			attrs = append(attrs,
				slog.String("user_id", actor.UserID.String()),
				slog.String("role", actor.Role.String()))
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		if statusCode >= 500 {
			level = slog.LevelError
		} else if statusCode >= 400 {
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
	}
}

// bookingAttrs names the resource a request touched, plus the booking and
// idempotency references clients send outside the path.
func bookingAttrs(c *gin.Context) []slog.Attr {
	var attrs []slog.Attr
	route := c.FullPath()
	for _, rp := range resourceParams {
		if strings.HasPrefix(route, rp.prefix) {
			if id := c.Param("id"); id != "" {
				attrs = append(attrs, slog.String(rp.attr, id))
			}
			break
		}
	}
	if day := c.Param("day"); day != "" {
		attrs = append(attrs, slog.String("day", day))
	}
	if date := c.Param("date"); date != "" {
		attrs = append(attrs, slog.String("date", date))
	}
	if bookingID := c.Query("booking_id"); bookingID != "" {
		attrs = append(attrs, slog.String("booking_id", bookingID))
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		attrs = append(attrs, slog.String("idempotency_key", key))
	}
	return attrs
}

func NewLogger(cfg config.LogConfig) *Logger {
	var logLevel slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{logger: slog.New(handler)}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(ctxRequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// incomingRequestID accepts a caller-supplied id only if it is short and printable.
func incomingRequestID(c *gin.Context) string {
	id := c.GetHeader(requestIDHeader)
	if id == "" || len(id) > maxRequestIDLen {
		return ""
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return id
}

func generateRequestID() string {
	timestamp := time.Now().UTC().Format("20060102150405")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s-fallback-%d", timestamp, time.Now().UnixNano()%100000000)
	}
	return fmt.Sprintf("%s-%s", timestamp, hex.EncodeToString(randomBytes))
}

type Logger struct {
	logger *slog.Logger
}
