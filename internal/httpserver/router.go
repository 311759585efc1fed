package httpserver

import (
	"github.com/labstack/echo/v4"
)

type Deps struct {
	JWTSecret        []byte
	CartHandler      *CartHTTP
	OrderHandler     *OrderHTTP
	CatalogHandler   *CatalogHTTP
	SearchHandler    *SearchHTTP
	NotificationHTTP *NotificationHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	v1.GET("/packages/:id", d.CatalogHandler.GetPackage)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	cart := v1.Group("/cart", RequireLogin(d.JWTSecret))
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.POST("/checkout", d.OrderHandler.MakeOrder)

	orders := v1.Group("/orders", RequireLogin(d.JWTSecret))
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/cancel", d.OrderHandler.CancelOrder)
	orders.PATCH("/:id", d.OrderHandler.UpdateOrderDetails)
	orders.GET("/purchased", d.OrderHandler.HasPurchased)

	notifications := v1.Group("/notifications", RequireLogin(d.JWTSecret))
	notifications.GET("", d.NotificationHTTP.ListNotifications)

	admin := v1.Group("/admin", AdminOnly(d.JWTSecret))
	admin.POST("/orders/:id/confirm", d.OrderHandler.ConfirmOrder)
	admin.POST("/orders/:id/cancel", d.OrderHandler.CancelOrder)
	admin.DELETE("/orders/:id", d.OrderHandler.DeleteOrder)
}
