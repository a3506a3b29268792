package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"appointment-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the booking and payment endpoints depend on, kept even when the
// configured lists omit them.
var (
	requiredAllowHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key", requestIDHeader}
	requiredExposeHeaders = []string{"Location", requestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	return cors.New(corsConfig(cfg, logger))
}

func corsConfig(cfg config.CORSConfig, logger *slog.Logger) cors.Config {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withRequired(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    withRequired(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	// the access_token cookie must not be sent to arbitrary origins
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		if corsCfg.AllowCredentials {
			logger.Warn("CORS wildcard origin disables credentials")
			corsCfg.AllowCredentials = false
		}
	}
	logger.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", corsCfg.AllowCredentials)
	return corsCfg
}

func withRequired(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
