package server

import (
	"log/slog"
	"time"

	"github.com/alkime/studio/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// setupMiddleware installs recovery, request logging and security headers.
func setupMiddleware(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	router.Use(gin.Recovery(), requestLogger(logger), secure.New(securityConfig(cfg)))

	logger.Debug("Configured middleware",
		"hsts_enabled", cfg.IsProduction(),
		"csp_mode", cfg.CSPMode,
	)
}

// securityConfig derives the security headers from cfg. HSTS is only sent in
// production, where Fly.io terminates TLS and forwards the original scheme.
func securityConfig(cfg *config.Config) secure.Config {
	stsSeconds := int64(0)
	if cfg.IsProduction() {
		stsSeconds = int64(cfg.HSTSMaxAge)
	}

	//nolint:exhaustruct // remaining secure options stay at their defaults
	return secure.Config{
		STSSeconds:            stsSeconds,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: config.BuildCSP(cfg.CSPMode),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	}
}

// requestLogger logs each request through slog. Health checks log at debug.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		switch {
		case c.Writer.Status() >= 500:
			level = slog.LevelError
		case c.FullPath() == "/health":
			level = slog.LevelDebug
		}

		logger.Log(c.Request.Context(), level, "Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// noStore marks responses as uncacheable.
func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
