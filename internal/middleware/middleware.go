package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"railres/internal/auth"
	"railres/internal/cache"
	"railres/internal/logger"
	"railres/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Ключи gin-контекста, которые выставляет Auth
const (
	UsernameKey     = "username"
	RoleKey         = "role"
	TokenIDKey      = "token_id"
	TokenExpiresKey = "token_expires_at"
)

const requestIDHeader = "X-Request-ID"

// RequestID присваивает запросу идентификатор и кладет его в контекст логгера
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = logger.NewRequestID()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Timeout ограничивает время жизни контекста запроса
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CORS middleware для обработки CORS запросов
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger middleware для структурированного логирования запросов
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if username := c.GetString(UsernameKey); username != "" {
			logFields = append(logFields, "username", username)
		}

		log := logger.WithContext(c.Request.Context())
		switch {
		case c.Writer.Status() >= 500:
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			log.Error("Request completed with error", logFields...)
		case c.Writer.Status() >= 400:
			log.Warn("Request rejected", logFields...)
		default:
			log.Debug("Request completed", logFields...)
		}
	}
}

// Recovery middleware для восстановления после паники с детальным логированием
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithContext(c.Request.Context()).Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// Metrics пишет число и длительность запросов по шаблону маршрута
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// Auth проверяет Bearer-токен и отклоняет отозванные токены
func Auth(issuer *auth.TokenIssuer, revocations cache.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := issuer.Validate(tokenStr)
		if err != nil {
			slog.Debug("Token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := c.Request.Context()
		revoked, err := revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.WithContext(ctx).Error("Failed to check token revocation", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session store unavailable"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}

		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		c.Set(TokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(TokenExpiresKey, claims.ExpiresAt.Time)
		}
		c.Request = c.Request.WithContext(logger.ContextWithUsername(ctx, claims.Username))

		c.Next()
	}
}

// RequireAdmin пропускает только токены с ролью администратора
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
