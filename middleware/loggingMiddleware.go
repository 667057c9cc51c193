package middleware

import (
	"time"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remoteIp", c.RealIP()),
			}

			switch {
			case res.Status >= 500:
				logger.Error("Request failed", append(fields, zap.Error(err))...)
			case res.Status >= 400:
				logger.Warn("Request rejected", fields...)
			default:
				logger.Debug("Request served", fields...)
			}

			return nil
		}
	}
}
