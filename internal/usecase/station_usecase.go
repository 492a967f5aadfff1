package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// StationUsecase は受け渡し駅ディレクトリのCRUD。
type StationUsecase struct {
	stations repo.StationRepository
	// 写真の相対パスを絶対URLにするためのベース（例 http://localhost:8080）
	baseURL string
}

func NewStationUsecase(stations repo.StationRepository, baseURL string) *StationUsecase {
	return &StationUsecase{
		stations: stations,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type ListStationsInput struct {
	Page  int
	Limit int
	City  string
}

type StationListMeta struct {
	Total int64 `json:"total"`
}

type StationListOutput struct {
	Data []model.RailwayStation `json:"data"`
	Meta StationListMeta        `json:"meta"`
}

type StationInput struct {
	City         string
	Name         string
	MeetingPoint string
	// 保存済み写真の相対パス（stations/xxx.jpg）。空なら変更なし/写真なし。
	Photo string
}

// 写真パスを絶対URLに書き換える
func (u *StationUsecase) withPhotoURL(s model.RailwayStation) model.RailwayStation {
	if s.Photo != "" && !strings.HasPrefix(s.Photo, "http") {
		s.Photo = u.baseURL + "/uploads/" + s.Photo
	}
	return s
}

func (u *StationUsecase) List(ctx context.Context, in ListStationsInput) (StationListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 10
	}

	stations, total, err := u.stations.List(ctx, repo.StationListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		City:  in.City,
	})
	if err != nil {
		return StationListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	data := make([]model.RailwayStation, 0, len(stations))
	for _, s := range stations {
		data = append(data, u.withPhotoURL(s))
	}

	return StationListOutput{
		Data: data,
		Meta: StationListMeta{Total: total},
	}, nil
}

func (u *StationUsecase) GetByID(ctx context.Context, id int64) (model.RailwayStation, error) {
	if id <= 0 {
		return model.RailwayStation{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.stations.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.RailwayStation{}, NewHTTPError(http.StatusNotFound, "Station not found")
	}
	if err != nil {
		return model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.withPhotoURL(s), nil
}

func (u *StationUsecase) ListByCity(ctx context.Context, city string) ([]model.RailwayStation, error) {
	stations, err := u.stations.ListByCity(ctx, city)
	if err != nil {
		return []model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	data := make([]model.RailwayStation, 0, len(stations))
	for _, s := range stations {
		data = append(data, u.withPhotoURL(s))
	}
	return data, nil
}

// city/name/meetingPointの必須チェック。違反は全部返す。
func validateStationInput(in StationInput) []string {
	fields := []string{}
	if strings.TrimSpace(in.City) == "" {
		fields = append(fields, "City is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "Station name is required")
	}
	if strings.TrimSpace(in.MeetingPoint) == "" {
		fields = append(fields, "Meeting point is required")
	}
	return fields
}

func (u *StationUsecase) Create(ctx context.Context, in StationInput) (model.RailwayStation, error) {
	if fields := validateStationInput(in); len(fields) > 0 {
		return model.RailwayStation{}, &ValidationError{Fields: fields}
	}

	city := strings.TrimSpace(in.City)
	name := strings.TrimSpace(in.Name)

	// 同じ都市に同名の駅は作れない
	_, found, err := u.stations.FindByCityAndName(ctx, city, name, 0)
	if err != nil {
		return model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		return model.RailwayStation{}, NewHTTPError(http.StatusBadRequest, "Station with this name already exists in this city")
	}

	s, err := u.stations.Create(ctx, model.RailwayStation{
		City:         city,
		Name:         name,
		MeetingPoint: strings.TrimSpace(in.MeetingPoint),
		Photo:        in.Photo,
	})
	if err != nil {
		return model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.withPhotoURL(s), nil
}

func (u *StationUsecase) Update(ctx context.Context, id int64, in StationInput) (model.RailwayStation, error) {
	if id <= 0 {
		return model.RailwayStation{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if fields := validateStationInput(in); len(fields) > 0 {
		return model.RailwayStation{}, &ValidationError{Fields: fields}
	}

	existing, err := u.stations.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.RailwayStation{}, NewHTTPError(http.StatusNotFound, "Station not found")
	}
	if err != nil {
		return model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	city := strings.TrimSpace(in.City)
	name := strings.TrimSpace(in.Name)

	// 名前か都市を変えるときだけ重複チェック（自分自身は除外）
	if name != existing.Name || city != existing.City {
		_, found, err := u.stations.FindByCityAndName(ctx, city, name, id)
		if err != nil {
			return model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			return model.RailwayStation{}, NewHTTPError(http.StatusBadRequest, "Station with this name already exists in this city")
		}
	}

	existing.City = city
	existing.Name = name
	existing.MeetingPoint = strings.TrimSpace(in.MeetingPoint)
	if in.Photo != "" {
		existing.Photo = in.Photo
	}

	if err := u.stations.Update(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.RailwayStation{}, NewHTTPError(http.StatusNotFound, "Station not found")
		}
		return model.RailwayStation{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.withPhotoURL(existing), nil
}

// 削除。既存注文からの参照はチェックしない（DESIGN.md参照）。
func (u *StationUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.stations.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Station not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 受け取り店舗の一覧（現状は1件）
type StoreUsecase struct {
	stores repo.StoreRepository
}

func NewStoreUsecase(stores repo.StoreRepository) *StoreUsecase {
	return &StoreUsecase{stores: stores}
}

func (u *StoreUsecase) List(ctx context.Context) ([]model.Store, error) {
	stores, err := u.stores.List(ctx)
	if err != nil {
		return []model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return stores, nil
}
