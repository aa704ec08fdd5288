package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cartH *handler.CartHandler, catalogH *handler.CatalogHandler) {
	catalogH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
}
