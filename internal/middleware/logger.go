package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger writes one zerolog line per request, at error level for
// 5xx, warn for 4xx and info otherwise.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogError:     true,
		LogLatency:   true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			// The error handler has not written the response yet when the
			// handler returned an error.
			if v.Error != nil {
				var he *echo.HTTPError
				if errors.As(v.Error, &he) {
					status = he.Code
				} else {
					status = 500
				}
			}

			var e *zerolog.Event
			switch {
			case status >= 500:
				e = log.Error().Err(v.Error)
			case status >= 400:
				e = log.Warn()
			default:
				e = log.Info()
			}
			if v.RequestID != "" {
				e = e.Str("request_id", v.RequestID)
			}
			e.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
