package handler

import (
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	Item         model.Item `json:"item"`
	RestaurantID model.ID   `json:"restaurant_id"`
}

// 店舗衝突は409でUIに判断を返す（確認→ /cart/replace）
type RestaurantConflictResponse struct {
	Error                 string   `json:"error"`
	ActiveRestaurantID    model.ID `json:"active_restaurant_id"`
	RequestedRestaurantID model.ID `json:"requested_restaurant_id"`
}

// /cart 配下を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.SessionCookie())

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.DELETE("/items/:id", h.removeItem)
	g.POST("/replace", h.replaceCart)
	g.DELETE("", h.clearCart)
	g.POST("/checkout", h.checkout)
}

func getSessionIDFromContext(c echo.Context) (string, bool) {
	sid, ok := c.Get(middleware.CtxSessionIDKey).(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}

func (h *CartHandler) getCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.Get(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session required"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), sid, usecase.AddItemInput{
		Item:         req.Item,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		var conflict *usecase.RestaurantConflictError
		if errors.As(err, &conflict) {
			return c.JSON(http.StatusConflict, RestaurantConflictResponse{
				Error:                 "restaurant conflict",
				ActiveRestaurantID:    conflict.ActiveRestaurantID,
				RequestedRestaurantID: conflict.RequestedRestaurantID,
			})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), sid, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) replaceCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session required"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Replace(c.Request().Context(), sid, usecase.AddItemInput{
		Item:         req.Item,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.Clear(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) checkout(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
