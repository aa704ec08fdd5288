package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type ItemListResponse struct {
	Items []model.Item `json:"items"`
}

type RestaurantListResponse struct {
	Restaurants []model.Restaurant `json:"restaurants"`
}

type NameListResponse struct {
	Names []string `json:"names"`
}

// 閲覧系の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/restaurants/:id/menu", h.menu)
	e.GET("/restaurants/location/:location", h.restaurantsByLocation)
	e.GET("/categories/available", h.availableCategories)
	e.GET("/categories/:name", h.category)
	e.GET("/locations/available", h.availableLocations)
	e.GET("/search", h.search)
	e.GET("/recommendations/:itemId", h.recommendations)
}

func (h *CatalogHandler) menu(c echo.Context) error {
	items, err := h.uc.Menu(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ItemListResponse{Items: items})
}

func (h *CatalogHandler) category(c echo.Context) error {
	items, err := h.uc.Category(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ItemListResponse{Items: items})
}

func (h *CatalogHandler) search(c echo.Context) error {
	items, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ItemListResponse{Items: items})
}

func (h *CatalogHandler) recommendations(c echo.Context) error {
	items, err := h.uc.Recommendations(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ItemListResponse{Items: items})
}

func (h *CatalogHandler) restaurantsByLocation(c echo.Context) error {
	list, err := h.uc.RestaurantsByLocation(c.Request().Context(), c.Param("location"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, RestaurantListResponse{Restaurants: list})
}

func (h *CatalogHandler) availableCategories(c echo.Context) error {
	names, err := h.uc.AvailableCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, NameListResponse{Names: names})
}

func (h *CatalogHandler) availableLocations(c echo.Context) error {
	names, err := h.uc.AvailableLocations(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, NameListResponse{Names: names})
}
