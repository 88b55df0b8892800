package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/heartbeat/internal/middleware"
	"github.com/deppfellow/heartbeat/internal/server"
)

// Handler is the base handler type that holds shared application dependencies.
// Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint that returns a result or an error.
type HandlerFunc[Res any] func(c echo.Context) (Res, error)

// ResponseHandler defines how a successful result is written and which
// New Relic attributes it adds.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler type in logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by EnhanceTracing.
}

// TextResponseHandler writes a plain text body. The handler result must
// be a string.
type TextResponseHandler struct {
	status int
}

// textContentType is sent without a charset parameter.
const textContentType = "text/plain"

func (h TextResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.Blob(h.status, textContentType, []byte(result.(string)))
}

func (h TextResponseHandler) GetOperation() string {
	return "handler_text"
}

func (h TextResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil {
		return
	}
	if text, ok := result.(string); ok {
		txn.AddAttribute("response.size_bytes", len(text))
	}
}

// handleRequest is the shared execution pipeline: handler logging,
// New Relic attributes and error reporting, timing, then the response.
func handleRequest(
	c echo.Context,
	handler func(c echo.Context) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	result, err := handler(c)
	handlerDuration := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler whose result is written as JSON.
//
//	router.GET("/status", handler.Handle(h.Health.Handler, h.Health.CheckHealth, http.StatusOK))
func Handle[Res any](h Handler, handler HandlerFunc[Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, func(c echo.Context) (interface{}, error) {
			return handler(c)
		}, JSONResponseHandler{status: status})
	}
}

// HandleText wraps a handler whose string result is written as text/plain.
func HandleText(h Handler, handler HandlerFunc[string], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, func(c echo.Context) (interface{}, error) {
			return handler(c)
		}, TextResponseHandler{status: status})
	}
}
