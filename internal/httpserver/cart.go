package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

type addToCartRequest struct {
	ProductID *uint  `json:"product_id"`
	PackageID *uint  `json:"package_id"`
	Quantity  uint   `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Material  string `json:"material"`
	Note      string `json:"note"`
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(c.Request().Context(), id.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}
	if req.ProductID != nil && req.PackageID != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "product_id and package_id are mutually exclusive"})
	}

	in := service.AddItemInput{
		Quantity: req.Quantity,
		Color:    req.Color,
		Size:     req.Size,
		Material: req.Material,
		Note:     req.Note,
	}
	switch {
	case req.ProductID != nil:
		in.Ref = models.ProductRef(*req.ProductID)
	case req.PackageID != nil:
		in.Ref = models.PackageRef(*req.PackageID)
	}

	item, err := h.Svc.AddToCart(c.Request().Context(), id.UserID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	item, err := h.Svc.UpdateQuantity(c.Request().Context(), id.UserID, uint(itemID), req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), id.UserID, uint(itemID)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted_item": itemID})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	id, err := identityOf(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(c.Request().Context(), id.UserID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
