package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// CatalogServiceに届かない・応答が読めない
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogRepository はリモートカタログの読み取り口。
// カート側はここを経由して得た商品をスナップショットするだけで、
// 取得はビュー都合の非同期呼び出しに任せる。
type CatalogRepository interface {
	Menu(ctx context.Context, restaurantID model.ID) ([]model.Item, error)
	Category(ctx context.Context, name string) ([]model.Item, error)
	Search(ctx context.Context, q string) ([]model.Item, error)
	Recommendations(ctx context.Context, itemID model.ID) ([]model.Item, error)
	RestaurantsByLocation(ctx context.Context, location string) ([]model.Restaurant, error)
	AvailableCategories(ctx context.Context) ([]string, error)
	AvailableLocations(ctx context.Context) ([]string, error)
}
