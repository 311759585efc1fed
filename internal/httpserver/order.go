package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
	"github.com/dentalmart/shop/internal/service"
	"github.com/dentalmart/shop/internal/util"
)

type OrderHTTP struct {
	Checkout  *service.CheckoutService
	Lifecycle *service.LifecycleService
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`
}

func (h *OrderHTTP) MakeOrder(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	order, err := h.Checkout.Checkout(c.Request().Context(), id.UserID, service.ShippingInfo{
		Address: req.ShippingAddress,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Lifecycle.ListOrders(c.Request().Context(), id.UserID, offset, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	order, err := h.Lifecycle.GetOrder(c.Request().Context(), uint(orderID), id.UserID, id.IsAdmin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	if err := h.Lifecycle.CancelOrder(c.Request().Context(), uint(orderID), id.UserID, id.IsAdmin); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"status": models.StatusCancelled})
}

func (h *OrderHTTP) ConfirmOrder(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	if err := h.Lifecycle.ConfirmOrder(c.Request().Context(), uint(orderID)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"status": models.StatusConfirmed})
}

func (h *OrderHTTP) UpdateOrderDetails(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	var req struct {
		ShippingAddress *string `json:"shipping_address"`
		Phone           *string `json:"phone"`
		Notes           *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	order, err := h.Lifecycle.UpdateOrderDetails(c.Request().Context(), uint(orderID), id.UserID, id.IsAdmin, repo.ShippingFields{
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	if err := h.Lifecycle.DeleteOrder(c.Request().Context(), uint(orderID)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// HasPurchased serves the review service's verified-purchase check.
func (h *OrderHTTP) HasPurchased(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	var ref models.ItemRef
	if v := c.QueryParam("product_id"); v != "" {
		pid, err := strconv.Atoi(v)
		if err != nil || pid <= 0 {
			return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid product_id"})
		}
		ref = models.ProductRef(uint(pid))
	} else if v := c.QueryParam("package_id"); v != "" {
		pid, err := strconv.Atoi(v)
		if err != nil || pid <= 0 {
			return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid package_id"})
		}
		ref = models.PackageRef(uint(pid))
	} else {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "product_id or package_id required"})
	}

	purchased, err := h.Lifecycle.HasConfirmedPurchase(c.Request().Context(), id.UserID, ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"purchased": purchased})
}
