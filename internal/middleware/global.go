package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/heartbeat/internal/errs"
	"github.com/deppfellow/heartbeat/internal/server"
)

// GlobalMiddlewares groups the middleware applied to every route and
// the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
//
// The heartbeat route is skipped: the middleware answers OPTIONS itself
// with 204, and every method on that route must reach the handler.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	heartbeatPath := global.server.Config.Heartbeat.Path

	return middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == heartbeatPath
		},
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger returns Echo's request logger middleware writing one "API"
// line per request through the request-scoped zerolog logger.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When the handler returned an error the response is written later by
			// GlobalErrorHandler, so v.Status is still 200. Derive it from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				} else {
					statusCode = http.StatusInternalServerError
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", logValue(v.Method, maxMethodLength)).
				Str("uri", logValue(v.URI, maxURILength)).
				Str("host", logValue(v.Host, maxHostLength)).
				Str("user_agent", userAgent(c)).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware. Panics become errors
// handled by GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Echo routing errors become HTTPErrors, anything unknown becomes a
// generic 500. The original error is logged; the client only ever sees
// the HTTPError JSON shape.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			switch echoErr.Code {
			case http.StatusNotFound:
				httpErr = errs.NewNotFoundError("Route not found", false, nil)
			case http.StatusMethodNotAllowed:
				httpErr = errs.NewMethodNotAllowedError("Method not allowed")
			default:
				message := http.StatusText(echoErr.Code)
				if msg, ok := echoErr.Message.(string); ok {
					message = msg
				}
				httpErr = errs.New(echoErr.Code, message, false)
			}
		} else {
			httpErr = errs.NewInternalServerError()
		}
	}

	logger := GetLogger(c)

	event := logger.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}

	event.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(httpErr.Status)
			return
		}
		_ = c.JSON(httpErr.Status, httpErr)
	}
}
