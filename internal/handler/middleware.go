package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/auth"
	"github.com/maxviazov/job-portal/pkg/response"
)

// RequestIDHeader carries the per-request correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses an inbound X-Request-ID or mints a uuid, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request; the level follows the response status.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Str("component", "access").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := l.Info()
		if status >= http.StatusInternalServerError {
			event = l.Error()
		} else if status >= http.StatusBadRequest {
			event = l.Warn()
		}
		event.
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("response_size", c.Writer.Size()).
			Msg("http request")

		for _, e := range c.Errors {
			l.Error().Str("request_id", c.GetString(requestIDKey)).Err(e.Err).Msg("request error")
		}
	}
}

// CORS builds the cors middleware from configured origins. An empty list allows any origin without credentials.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// TokenVerifier is what Authenticate needs from the auth layer.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate accepts a bearer header or the session cookie. Verified claims and the raw
// token go into the request context so outbound backend calls can forward the token.
func Authenticate(v TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		claims, err := v.Verify(token)
		if err != nil {
			response.WriteError(c, auth.ErrUnauthorized)
			return
		}
		ctx := auth.WithClaims(auth.WithToken(c.Request.Context(), token), claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.ClaimsFrom(c.Request.Context())
		if claims == nil {
			response.WriteError(c, auth.ErrUnauthorized)
			return
		}
		if !claims.IsAdmin() {
			response.WriteError(c, auth.ErrForbidden)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
