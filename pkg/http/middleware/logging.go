package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "Wallboard/pkg/logger"
)

// RequestLogging logs HTTP requests at debug level. Websocket upgrades stay
// open for the whole session, so their latency is not meaningful.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			l.Debug("http request",
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("latency", time.Since(start)),
			)

			return err
		}
	}
}
