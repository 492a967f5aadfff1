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

func newStationUC(stations *MockStationRepository) *usecase.StationUsecase {
	return usecase.NewStationUsecase(stations, "http://localhost:8080")
}

func TestStationList_PhotoBecomesAbsoluteURL(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("List", mock.Anything, repo.StationListQuery{Page: 1, Limit: 10}).Return([]model.RailwayStation{
		{ID: 1, City: "Nyon", Name: "Nyon", Photo: "stations/a.jpg"},
		{ID: 2, City: "Geneva", Name: "Cornavin"},
	}, int64(2), nil)

	uc := newStationUC(stations)

	out, err := uc.List(context.Background(), usecase.ListStationsInput{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Meta.Total)
	assert.Equal(t, "http://localhost:8080/uploads/stations/a.jpg", out.Data[0].Photo)
	assert.Empty(t, out.Data[1].Photo)
}

func TestStationCreate_MissingFields_CollectsAll(t *testing.T) {
	stations := new(MockStationRepository)
	uc := newStationUC(stations)

	_, err := uc.Create(context.Background(), usecase.StationInput{})

	ve, ok := usecase.AsValidationError(err)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{
		"City is required",
		"Station name is required",
		"Meeting point is required",
	}, ve.Fields)
	stations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStationCreate_DuplicateCityName(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("FindByCityAndName", mock.Anything, "Nyon", "Nyon", int64(0)).
		Return(model.RailwayStation{ID: 1}, true, nil)

	uc := newStationUC(stations)

	_, err := uc.Create(context.Background(), usecase.StationInput{
		City:         "Nyon",
		Name:         "Nyon",
		MeetingPoint: "main hall",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "Station with this name already exists in this city", he.Message)
	stations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStationCreate_SameNameDifferentCity(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("FindByCityAndName", mock.Anything, "Geneva", "Nyon", int64(0)).
		Return(model.RailwayStation{}, false, nil)
	stations.On("Create", mock.Anything, mock.MatchedBy(func(s model.RailwayStation) bool {
		return s.City == "Geneva" && s.Name == "Nyon"
	})).Return(model.RailwayStation{ID: 2, City: "Geneva", Name: "Nyon"}, nil)

	uc := newStationUC(stations)

	s, err := uc.Create(context.Background(), usecase.StationInput{
		City:         "Geneva",
		Name:         "Nyon",
		MeetingPoint: "platform 1",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), s.ID)
	stations.AssertExpectations(t)
}

func TestStationUpdate_RenameChecksDuplicateExcludingSelf(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("FindByID", mock.Anything, int64(1)).
		Return(model.RailwayStation{ID: 1, City: "Nyon", Name: "Nyon", MeetingPoint: "hall"}, nil)
	stations.On("FindByCityAndName", mock.Anything, "Nyon", "Nyon Nord", int64(1)).
		Return(model.RailwayStation{}, false, nil)
	stations.On("Update", mock.Anything, mock.MatchedBy(func(s model.RailwayStation) bool {
		return s.ID == 1 && s.Name == "Nyon Nord"
	})).Return(nil)

	uc := newStationUC(stations)

	s, err := uc.Update(context.Background(), 1, usecase.StationInput{
		City:         "Nyon",
		Name:         "Nyon Nord",
		MeetingPoint: "hall",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Nyon Nord", s.Name)
	stations.AssertExpectations(t)
}

func TestStationUpdate_SameName_SkipsDuplicateCheck(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("FindByID", mock.Anything, int64(1)).
		Return(model.RailwayStation{ID: 1, City: "Nyon", Name: "Nyon", MeetingPoint: "hall"}, nil)
	stations.On("Update", mock.Anything, mock.AnythingOfType("model.RailwayStation")).Return(nil)

	uc := newStationUC(stations)

	_, err := uc.Update(context.Background(), 1, usecase.StationInput{
		City:         "Nyon",
		Name:         "Nyon",
		MeetingPoint: "south exit",
	})
	assert.NoError(t, err)
	stations.AssertNotCalled(t, "FindByCityAndName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStationDelete_NotFound(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("Delete", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	uc := newStationUC(stations)

	err := uc.Delete(context.Background(), 9)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	assert.Equal(t, "Station not found", he.Message)
}

func TestStationGetByID_NotFound(t *testing.T) {
	stations := new(MockStationRepository)
	stations.On("FindByID", mock.Anything, int64(9)).Return(model.RailwayStation{}, repo.ErrNotFound)

	uc := newStationUC(stations)

	_, err := uc.GetByID(context.Background(), 9)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}
