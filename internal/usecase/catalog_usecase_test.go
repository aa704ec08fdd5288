package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CatalogRepositoryMock struct{ mock.Mock }

func (m *CatalogRepositoryMock) Menu(ctx context.Context, restaurantID model.ID) ([]model.Item, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *CatalogRepositoryMock) Category(ctx context.Context, name string) ([]model.Item, error) {
	args := m.Called(ctx, name)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *CatalogRepositoryMock) Search(ctx context.Context, q string) ([]model.Item, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *CatalogRepositoryMock) Recommendations(ctx context.Context, itemID model.ID) ([]model.Item, error) {
	args := m.Called(ctx, itemID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *CatalogRepositoryMock) RestaurantsByLocation(ctx context.Context, location string) ([]model.Restaurant, error) {
	args := m.Called(ctx, location)
	list, _ := args.Get(0).([]model.Restaurant)
	return list, args.Error(1)
}

func (m *CatalogRepositoryMock) AvailableCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *CatalogRepositoryMock) AvailableLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func assertHTTPError(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, status, he.Status)
}

func TestCatalogUsecase_Menu(t *testing.T) {
	ctx := context.Background()
	m := new(CatalogRepositoryMock)
	uc := usecase.NewCatalogUsecase(m)

	want := []model.Item{{ItemID: "1", Name: "Masala Dosa", Price: 90, RestaurantID: "7"}}
	m.On("Menu", mock.Anything, model.ID("7")).Return(want, nil)

	items, err := uc.Menu(ctx, "7")
	assert.NoError(t, err)
	assert.Equal(t, want, items)
	m.AssertExpectations(t)
}

func TestCatalogUsecase_Menu_InvalidID(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUsecase(new(CatalogRepositoryMock))

	_, err := uc.Menu(ctx, "   ")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_Menu_UnavailableDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	m := new(CatalogRepositoryMock)
	uc := usecase.NewCatalogUsecase(m)

	m.On("Menu", mock.Anything, model.ID("7")).Return(nil, repo.ErrCatalogUnavailable)

	// カタログ停止でもエラーにしない（空で返して画面は出す）
	items, err := uc.Menu(ctx, "7")
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCatalogUsecase_Search_RequiresQuery(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUsecase(new(CatalogRepositoryMock))

	_, err := uc.Search(ctx, "")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_Search_TrimsQuery(t *testing.T) {
	ctx := context.Background()
	m := new(CatalogRepositoryMock)
	uc := usecase.NewCatalogUsecase(m)

	m.On("Search", mock.Anything, "dosa").Return([]model.Item{}, nil)

	_, err := uc.Search(ctx, "  dosa  ")
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestCatalogUsecase_Category_RequiresName(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUsecase(new(CatalogRepositoryMock))

	_, err := uc.Category(ctx, " ")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_RestaurantsByLocation_Degrades(t *testing.T) {
	ctx := context.Background()
	m := new(CatalogRepositoryMock)
	uc := usecase.NewCatalogUsecase(m)

	m.On("RestaurantsByLocation", mock.Anything, "Indiranagar").Return(nil, repo.ErrCatalogUnavailable)

	list, err := uc.RestaurantsByLocation(ctx, "Indiranagar")
	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCatalogUsecase_AvailableCategories_Degrades(t *testing.T) {
	ctx := context.Background()
	m := new(CatalogRepositoryMock)
	uc := usecase.NewCatalogUsecase(m)

	m.On("AvailableCategories", mock.Anything).Return(nil, repo.ErrCatalogUnavailable)

	names, err := uc.AvailableCategories(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestCatalogUsecase_AvailableLocations(t *testing.T) {
	ctx := context.Background()
	m := new(CatalogRepositoryMock)
	uc := usecase.NewCatalogUsecase(m)

	m.On("AvailableLocations", mock.Anything).Return([]string{"Koramangala", "HSR"}, nil)

	names, err := uc.AvailableLocations(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Koramangala", "HSR"}, names)
}
