package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/go-resty/resty/v2"
)

// Client はCatalogServiceのHTTPクライアント。
// 非2xx・壊れたJSON・接続失敗はすべて ErrCatalogUnavailable に畳む。
// ページを落とすかどうかは呼び出し側（閲覧usecase）が決める。
type Client struct {
	http *resty.Client
}

// DI
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{http: c}
}

func (c *Client) Menu(ctx context.Context, restaurantID model.ID) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/restaurant/%s/menu", url.PathEscape(string(restaurantID)))
	if err := c.getJSON(ctx, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Category(ctx context.Context, name string) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/category/%s", url.PathEscape(name))
	if err := c.getJSON(ctx, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Search(ctx context.Context, q string) ([]model.Item, error) {
	var items []model.Item
	if err := c.getJSON(ctx, "/search", map[string]string{"q": q}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Recommendations(ctx context.Context, itemID model.ID) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/recommend/%s", url.PathEscape(string(itemID)))
	if err := c.getJSON(ctx, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) RestaurantsByLocation(ctx context.Context, location string) ([]model.Restaurant, error) {
	var list []model.Restaurant
	path := fmt.Sprintf("/restaurants/location/%s", url.PathEscape(location))
	if err := c.getJSON(ctx, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) AvailableCategories(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "/categories/available", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) AvailableLocations(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "/locations/available", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetResult(out)

	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return repo.ErrCatalogUnavailable
	}
	if resp.IsError() {
		return repo.ErrCatalogUnavailable
	}
	return nil
}
