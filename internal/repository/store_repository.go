package repository

import (
	"context"

	"app/internal/domain/model"
)

type StoreRepository interface {
	List(ctx context.Context) ([]model.Store, error)
	FindByID(ctx context.Context, id int64) (model.Store, error)

	// 起動時seed用。既にあれば何もしない。
	EnsureDefault(ctx context.Context, s model.Store) error
}
