package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ListHandler    *ListHTTP
	AccountHandler *AccountHTTP
	CatalogHandler *CatalogHTTP
}

// Register wires the route table. Paths match the original mobile client.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/lists", d.ListHandler.CreateList)
	e.GET("/lists", d.ListHandler.GetLists)
	e.GET("/lists/:userId", d.ListHandler.GetListsForUser)
	e.PUT("/lists/:id", d.ListHandler.UpdateList)
	e.DELETE("/lists/:id", d.ListHandler.DeleteList)

	e.POST("/products/:listId", d.ListHandler.AddProduct)
	e.GET("/products/:listId", d.ListHandler.GetProducts)
	e.GET("/combinedData/:listId", d.ListHandler.CombinedData)

	e.POST("/users", d.AccountHandler.Register)
	e.GET("/users", d.AccountHandler.GetUsers)
	e.GET("/users/:id", d.AccountHandler.GetUser)
	e.PUT("/users/:id", d.AccountHandler.UpdateUser)
	e.POST("/login", d.AccountHandler.Login)
	e.POST("/logout", d.AccountHandler.Logout)

	e.GET("/api/data", d.CatalogHandler.GetData)
	e.GET("/api/data/search", d.CatalogHandler.SearchData)
}
