package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type DeliveryGormRepository struct {
	db *gorm.DB
}

func NewDeliveryGormRepository(db *gorm.DB) *DeliveryGormRepository {
	return &DeliveryGormRepository{db: db}
}

func (r *DeliveryGormRepository) CreateAddress(ctx context.Context, d model.AddressDelivery) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (r *DeliveryGormRepository) CreateStation(ctx context.Context, d model.StationDelivery) (int64, error) {
	// Stationはプリロード用の参照なのでここでは書かない
	d.Station = nil
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (r *DeliveryGormRepository) CreatePickup(ctx context.Context, d model.PickupDelivery) (int64, error) {
	d.Store = nil
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return 0, err
	}
	return d.ID, nil
}
