package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// 固定応答のカタログ（downなら全取得が失敗する）
type stubCatalog struct {
	items       []model.Item
	restaurants []model.Restaurant
	names       []string
	down        bool
}

func (s *stubCatalog) err() error {
	if s.down {
		return repo.ErrCatalogUnavailable
	}
	return nil
}

func (s *stubCatalog) Menu(ctx context.Context, restaurantID model.ID) ([]model.Item, error) {
	return s.items, s.err()
}

func (s *stubCatalog) Category(ctx context.Context, name string) ([]model.Item, error) {
	return s.items, s.err()
}

func (s *stubCatalog) Search(ctx context.Context, q string) ([]model.Item, error) {
	return s.items, s.err()
}

func (s *stubCatalog) Recommendations(ctx context.Context, itemID model.ID) ([]model.Item, error) {
	return s.items, s.err()
}

func (s *stubCatalog) RestaurantsByLocation(ctx context.Context, location string) ([]model.Restaurant, error) {
	return s.restaurants, s.err()
}

func (s *stubCatalog) AvailableCategories(ctx context.Context) ([]string, error) {
	return s.names, s.err()
}

func (s *stubCatalog) AvailableLocations(ctx context.Context) ([]string, error) {
	return s.names, s.err()
}

func newCatalogServer(stub *stubCatalog) *echo.Echo {
	h := handler.NewCatalogHandler(usecase.NewCatalogUsecase(stub))

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func TestCatalogHandler_Menu(t *testing.T) {
	stub := &stubCatalog{items: []model.Item{{ItemID: "1", Name: "Masala Dosa", Price: 90, RestaurantID: "7"}}}
	e := newCatalogServer(stub)

	rec, _ := doJSON(e, http.MethodGet, "/restaurants/7/menu", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.ItemListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "Masala Dosa", out.Items[0].Name)
}

func TestCatalogHandler_Menu_CatalogDown200Empty(t *testing.T) {
	e := newCatalogServer(&stubCatalog{down: true})

	rec, _ := doJSON(e, http.MethodGet, "/restaurants/7/menu", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.ItemListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestCatalogHandler_Search_MissingQuery400(t *testing.T) {
	e := newCatalogServer(&stubCatalog{})

	rec, _ := doJSON(e, http.MethodGet, "/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body handler.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "q required", body.Error)
}

func TestCatalogHandler_Search(t *testing.T) {
	stub := &stubCatalog{items: []model.Item{{ItemID: "2", Name: "Idli", Price: 40}}}
	e := newCatalogServer(stub)

	rec, _ := doJSON(e, http.MethodGet, "/search?q=idli", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.ItemListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Items, 1)
}

func TestCatalogHandler_RestaurantsByLocation(t *testing.T) {
	stub := &stubCatalog{restaurants: []model.Restaurant{{RestaurantID: "7", RestaurantName: "Udupi Palace", Locality: "Koramangala"}}}
	e := newCatalogServer(stub)

	rec, _ := doJSON(e, http.MethodGet, "/restaurants/location/Koramangala", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.RestaurantListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Restaurants, 1)
	assert.Equal(t, "Udupi Palace", out.Restaurants[0].RestaurantName)
}

func TestCatalogHandler_AvailableCategories(t *testing.T) {
	stub := &stubCatalog{names: []string{"South Indian", "Chinese"}}
	e := newCatalogServer(stub)

	rec, _ := doJSON(e, http.MethodGet, "/categories/available", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.NameListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"South Indian", "Chinese"}, out.Names)
}

func TestCatalogHandler_Recommendations(t *testing.T) {
	stub := &stubCatalog{items: []model.Item{{ItemID: "9", Name: "Filter Coffee", Price: 30}}}
	e := newCatalogServer(stub)

	rec, _ := doJSON(e, http.MethodGet, "/recommendations/9", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.ItemListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Items, 1)
}
