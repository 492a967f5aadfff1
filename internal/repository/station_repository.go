package repository

import (
	"context"

	"app/internal/domain/model"
)

type StationListQuery struct {
	Page  int
	Limit int
	// 部分一致（大文字小文字を区別しない）
	City string
}

type StationRepository interface {
	List(ctx context.Context, q StationListQuery) ([]model.RailwayStation, int64, error)
	FindByID(ctx context.Context, id int64) (model.RailwayStation, error)
	ListByCity(ctx context.Context, city string) ([]model.RailwayStation, error)

	// (city, name)の一意性チェック用。excludeID>0なら自分自身を除外する。
	FindByCityAndName(ctx context.Context, city string, name string, excludeID int64) (model.RailwayStation, bool, error)

	Create(ctx context.Context, s model.RailwayStation) (model.RailwayStation, error)
	Update(ctx context.Context, s model.RailwayStation) error
	Delete(ctx context.Context, id int64) error
}
