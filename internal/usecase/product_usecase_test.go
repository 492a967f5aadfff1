package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductUC(products *MockProductRepository) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(products, "http://localhost:8080")
}

// =====================
// Public catalog
// =====================

func TestListPublicProducts_PublicOnly(t *testing.T) {
	products := new(MockProductRepository)
	products.On("List", mock.Anything, repo.ProductListQuery{
		Page:       1,
		Limit:      20,
		Q:          "tea",
		PublicOnly: true,
	}).Return([]model.Product{{ID: 1, Name: "Green tea", Image: "products/t.jpg"}}, int64(1), nil)

	uc := newProductUC(products)

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, Q: "tea"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, "http://localhost:8080/uploads/products/t.jpg", out.Items[0].Image)
	products.AssertExpectations(t)
}

func TestListPublicProducts_InvalidPage(t *testing.T) {
	products := new(MockProductRepository)
	uc := newProductUC(products)

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetProductDetail_InactiveHidden(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, IsActive: false}, nil)

	uc := newProductUC(products)

	_, err := uc.GetProductDetail(context.Background(), 5)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestGetProductDetail_NotFound(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound)

	uc := newProductUC(products)

	_, err := uc.GetProductDetail(context.Background(), 9)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

// =====================
// Admin CRUD
// =====================

func TestProductCreate_Validation(t *testing.T) {
	products := new(MockProductRepository)
	uc := newProductUC(products)

	_, err := uc.Create(context.Background(), usecase.ProductInput{
		Name:  "",
		Price: -1,
		Stock: -2,
	})

	ve, ok := usecase.AsValidationError(err)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "price", "stock"}, ve.Fields)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUpdate_KeepsImageWhenEmpty(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{
		ID: 5, Name: "Green tea", Price: 10, Stock: 3, Image: "products/old.jpg", IsActive: true,
	}, nil)
	products.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		// 画像未指定なら既存画像を残す
		return p.ID == 5 && p.Image == "products/old.jpg" && p.Price == 12.5
	})).Return(nil)

	uc := newProductUC(products)

	p, err := uc.Update(context.Background(), 5, usecase.ProductInput{
		Name:     "Green tea",
		Price:    12.5,
		Stock:    3,
		IsActive: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 12.5, p.Price)
	products.AssertExpectations(t)
}

func TestProductDelete_NotFound(t *testing.T) {
	products := new(MockProductRepository)
	products.On("SoftDelete", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	uc := newProductUC(products)

	err := uc.Delete(context.Background(), 9)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}
