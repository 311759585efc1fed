package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalmart/shop/internal/service"
	"github.com/dentalmart/shop/pkg/logging"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto HTTP statuses. Unknown
// errors become 500 without leaking details.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrInvalidOperation),
		errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("internal error", "error", err)
		return c.JSON(status, errorBody{Error: "internal server error"})
	}
	return c.JSON(status, errorBody{Error: err.Error()})
}
