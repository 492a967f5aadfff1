package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
	baseURL  string
}

// DI
func NewProductUsecase(products repo.ProductRepository, baseURL string) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
	// 保存済み画像の相対パス。空なら変更なし/画像なし。
	Image    string
	IsActive bool
}

func (u *ProductUsecase) withImageURL(p model.Product) model.Product {
	if p.Image != "" && !strings.HasPrefix(p.Image, "http") {
		p.Image = u.baseURL + "/uploads/" + p.Image
	}
	return p
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		PublicOnly: true,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]model.Product, 0, len(items))
	for _, p := range items {
		out = append(out, u.withImageURL(p))
	}

	return ProductListOutput{
		Items: out,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 非公開商品は一般ユーザーには存在しない扱い
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	return u.withImageURL(p), nil
}

func validateProductInput(in ProductInput) []string {
	fields := []string{}
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name")
	}
	if in.Price < 0 {
		fields = append(fields, "price")
	}
	if in.Stock < 0 {
		fields = append(fields, "stock")
	}
	return fields
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (model.Product, error) {
	if fields := validateProductInput(in); len(fields) > 0 {
		return model.Product{}, &ValidationError{Fields: fields}
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       in.Image,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.withImageURL(p), nil
}

func (u *ProductUsecase) Update(ctx context.Context, productID int64, in ProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if fields := validateProductInput(in); len(fields) > 0 {
		return model.Product{}, &ValidationError{Fields: fields}
	}

	existing, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = in.Description
	existing.Price = in.Price
	existing.Stock = in.Stock
	existing.IsActive = in.IsActive
	if in.Image != "" {
		existing.Image = in.Image
	}

	if err := u.products.Update(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.withImageURL(existing), nil
}

// 論理削除。既存注文の明細は商品IDを参照し続ける。
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.products.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
