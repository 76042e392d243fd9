package restapi

import (
	"net/http"
	"time"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionContextKey = "session"

// ZapLoggerMiddleware logs every request through z once it has been served.
func ZapLoggerMiddleware(z *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			z.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			z.Warn("HTTP request", fields...)
		default:
			z.Debug("HTTP request", fields...)
		}
	}
}

// SessionCookie describes the cookie carrying the session id.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// SessionMiddleware attaches the visitor's session to the request, creating
// one (and setting the cookie) on the first visit or after expiry.
func SessionMiddleware(store port.SessionStore, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.Name)
		session, _ := store.GetOrCreate(id)

		// The expiry slides on every request, so the cookie is refreshed too.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, session.ID, int(cookie.MaxAge.Seconds()), "/", "", cookie.Secure, true)

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// sessionFrom returns the session put on the context by SessionMiddleware.
func sessionFrom(c *gin.Context) *entity.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*entity.Session)
	return session
}
