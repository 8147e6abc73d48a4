package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth    *AuthHTTP
	Admin   *AdminHTTP
	Catalog *CatalogHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", d.Auth.Home)
	e.GET("/register", d.Auth.RegisterPage)
	e.POST("/register", d.Auth.Register)
	e.GET("/login", d.Auth.LoginPage)
	e.POST("/login", d.Auth.Login)
	e.GET("/logout", d.Auth.Logout)

	// Admin routes gate themselves with an explicit RequireAdmin
	// decision instead of a middleware chain.
	admin := e.Group("/admin")
	admin.GET("/dashboard", d.Admin.Dashboard)
	admin.POST("/products/new", d.Admin.CreateProduct)
	admin.GET("/products/edit/:id", d.Admin.EditProductPage)
	admin.POST("/products/edit/:id", d.Admin.UpdateProduct)

	api := e.Group("/api")
	api.GET("/products", d.Catalog.GetProducts)
	api.GET("/products/:id", d.Catalog.GetProduct)
	api.GET("/search", d.Catalog.Search)
}
