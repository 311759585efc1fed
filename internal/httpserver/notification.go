package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalmart/shop/internal/repo"
	"github.com/dentalmart/shop/internal/util"
)

type NotificationHTTP struct {
	Repo *repo.GormRepo
}

func (h *NotificationHTTP) ListNotifications(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	items, err := h.Repo.ListNotifications(c.Request().Context(), id.UserID, offset, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
