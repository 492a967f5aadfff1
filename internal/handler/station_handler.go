package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/upload"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StationHandler struct {
	uc      *usecase.StationUsecase
	stores  *usecase.StoreUsecase
	storage *upload.Storage
}

func NewStationHandler(uc *usecase.StationUsecase, stores *usecase.StoreUsecase, storage *upload.Storage) *StationHandler {
	return &StationHandler{uc: uc, stores: stores, storage: storage}
}

func (h *StationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 一覧と詳細はチェックアウト画面から叩くので公開
	e.GET("/railway-stations", h.list)
	e.GET("/railway-stations/:id", h.detail)
	e.GET("/railway-stations/city/:city", h.listByCity)

	e.GET("/stores", h.listStores)

	// 変更系は同じパスで管理者のみ
	admin := e.Group("/railway-stations")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.remove)
}

func (h *StationHandler) list(c echo.Context) error {
	page := 0
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListStationsInput{
		Page:  page,
		Limit: limit,
		City:  c.QueryParam("city"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StationHandler) detail(c echo.Context) error {
	stationID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	s, uerr := h.uc.GetByID(c.Request().Context(), stationID)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StationHandler) listByCity(c echo.Context) error {
	data, err := h.uc.ListByCity(c.Request().Context(), c.Param("city"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

func (h *StationHandler) listStores(c echo.Context) error {
	data, err := h.stores.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

// multipartフォームから駅入力を組み立てる。photoは任意。
func (h *StationHandler) bindStationForm(c echo.Context) (usecase.StationInput, error) {
	in := usecase.StationInput{
		City:         c.FormValue("city"),
		Name:         c.FormValue("name"),
		MeetingPoint: c.FormValue("meetingPoint"),
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		// 写真なしは許容
		return in, nil
	}

	rel, err := h.storage.Save("stations", fh)
	if err != nil {
		return usecase.StationInput{}, err
	}
	in.Photo = rel

	return in, nil
}

func (h *StationHandler) create(c echo.Context) error {
	in, err := h.bindStationForm(c)
	if err != nil {
		return writeUploadError(c, err)
	}

	s, uerr := h.uc.Create(c.Request().Context(), in)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *StationHandler) update(c echo.Context) error {
	stationID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := h.bindStationForm(c)
	if err != nil {
		return writeUploadError(c, err)
	}

	s, uerr := h.uc.Update(c.Request().Context(), stationID, in)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StationHandler) remove(c echo.Context) error {
	stationID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if uerr := h.uc.Delete(c.Request().Context(), stationID); uerr != nil {
		return writeError(c, uerr)
	}
	return c.NoContent(http.StatusNoContent)
}
