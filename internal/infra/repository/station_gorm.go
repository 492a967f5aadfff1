package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type StationGormRepository struct {
	db *gorm.DB
}

// DI
func NewStationGormRepository(db *gorm.DB) *StationGormRepository {
	return &StationGormRepository{db: db}
}

// 都市名の部分一致（大文字小文字区別なし）＋ページングで返す。
func (r *StationGormRepository) List(ctx context.Context, q repo.StationListQuery) ([]model.RailwayStation, int64, error) {
	var stations []model.RailwayStation
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.RailwayStation{})

	if strings.TrimSpace(q.City) != "" {
		like := "%" + strings.TrimSpace(q.City) + "%"
		tx = tx.Where("city ILIKE ?", like)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.RailwayStation{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := tx.Order("city asc").Order("id asc").
		Limit(q.Limit).
		Offset(offset).
		Find(&stations).Error
	if err != nil {
		return []model.RailwayStation{}, 0, err
	}

	return stations, total, nil
}

func (r *StationGormRepository) FindByID(ctx context.Context, id int64) (model.RailwayStation, error) {
	var s model.RailwayStation
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RailwayStation{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RailwayStation{}, err
	}
	return s, nil
}

func (r *StationGormRepository) ListByCity(ctx context.Context, city string) ([]model.RailwayStation, error) {
	var stations []model.RailwayStation
	like := "%" + strings.TrimSpace(city) + "%"
	err := r.db.WithContext(ctx).
		Where("city ILIKE ?", like).
		Order("name asc").
		Find(&stations).Error
	if err != nil {
		return []model.RailwayStation{}, err
	}
	return stations, nil
}

func (r *StationGormRepository) FindByCityAndName(ctx context.Context, city string, name string, excludeID int64) (model.RailwayStation, bool, error) {
	q := r.db.WithContext(ctx).Where("city = ? AND name = ?", city, name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var s model.RailwayStation
	err := q.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RailwayStation{}, false, nil
	}
	if err != nil {
		return model.RailwayStation{}, false, err
	}
	return s, true, nil
}

func (r *StationGormRepository) Create(ctx context.Context, s model.RailwayStation) (model.RailwayStation, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.RailwayStation{}, err
	}
	return s, nil
}

func (r *StationGormRepository) Update(ctx context.Context, s model.RailwayStation) error {
	res := r.db.WithContext(ctx).Model(&model.RailwayStation{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"city":          s.City,
			"name":          s.Name,
			"meeting_point": s.MeetingPoint,
			"photo":         s.Photo,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 参照している注文があっても止めない（station_deliveriesはそのまま残る）
func (r *StationGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.RailwayStation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
