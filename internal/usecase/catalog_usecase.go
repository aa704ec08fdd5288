package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// CatalogUsecase は閲覧系（メニュー・カテゴリ・検索・おすすめ・店舗一覧）。
// カタログが落ちていても画面は出す：取得失敗は空の結果に落とし、
// エラーとしては伝播させない。
type CatalogUsecase struct {
	catalog repo.CatalogRepository
}

// DI
func NewCatalogUsecase(catalog repo.CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog}
}

func (u *CatalogUsecase) Menu(ctx context.Context, restaurantID string) ([]model.Item, error) {
	id := model.NormalizeID(restaurantID)
	if id == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	items, err := u.catalog.Menu(ctx, id)
	return degradeItems(items, err)
}

func (u *CatalogUsecase) Category(ctx context.Context, name string) ([]model.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "category required")
	}

	items, err := u.catalog.Category(ctx, name)
	return degradeItems(items, err)
}

func (u *CatalogUsecase) Search(ctx context.Context, q string) ([]model.Item, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "q required")
	}

	items, err := u.catalog.Search(ctx, q)
	return degradeItems(items, err)
}

func (u *CatalogUsecase) Recommendations(ctx context.Context, itemID string) ([]model.Item, error) {
	id := model.NormalizeID(itemID)
	if id == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	items, err := u.catalog.Recommendations(ctx, id)
	return degradeItems(items, err)
}

func (u *CatalogUsecase) RestaurantsByLocation(ctx context.Context, location string) ([]model.Restaurant, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "location required")
	}

	list, err := u.catalog.RestaurantsByLocation(ctx, location)
	if err != nil || list == nil {
		return []model.Restaurant{}, nil
	}
	return list, nil
}

func (u *CatalogUsecase) AvailableCategories(ctx context.Context) ([]string, error) {
	names, err := u.catalog.AvailableCategories(ctx)
	return degradeNames(names, err)
}

func (u *CatalogUsecase) AvailableLocations(ctx context.Context) ([]string, error) {
	names, err := u.catalog.AvailableLocations(ctx)
	return degradeNames(names, err)
}

// 非2xx・壊れたJSON・接続失敗はすべて「データなし」に落とす
func degradeItems(items []model.Item, err error) ([]model.Item, error) {
	if err != nil || items == nil {
		return []model.Item{}, nil
	}
	return items, nil
}

func degradeNames(names []string, err error) ([]string, error) {
	if err != nil || names == nil {
		return []string{}, nil
	}
	return names, nil
}
