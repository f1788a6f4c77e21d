package middleware

import (
	"net/http"
	"time"

	"github.com/Nikise23/optica-mia/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler turns errors left on the gin context into a generic 500.
// The underlying error only goes to the log, never to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		ultimo := c.Errors.Last()
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("errores", len(c.Errors)).
			Err(ultimo.Err).
			Msg("error no manejado")

		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// Recovery converts panics into 500 responses so a bad handler cannot take
// the process down mid-request.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.FullPath()).
					Interface("panic", r).
					Msg("panic recuperado")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// Logger emits one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()
		evt := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(inicio)).
			Msg("request")
	}
}
