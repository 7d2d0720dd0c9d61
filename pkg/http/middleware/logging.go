package middleware

import (
	"log"
	"time"

	applogger "FXBrief/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging emits one access-log line per request. A nil logger falls
// back to the standard library so bare servers still log.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil {
				status = 500
			}
			latency := time.Since(start)

			if l == nil {
				log.Printf("[%s] %s %s - %d (%s)",
					req.Method, req.RequestURI, c.RealIP(), status, latency)
				return err
			}
			l.Info("request",
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote_ip", c.RealIP()),
				applogger.Int("status", status),
				applogger.Duration("latency", latency),
				applogger.Int64("bytes_out", c.Response().Size),
			)
			return err
		}
	}
}
