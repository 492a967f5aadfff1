package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/upload"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// エラーレスポンスの共通形
type ErrorResponse struct {
	Error string `json:"error"`
}

// バリデーション違反はまとめて返す
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

// usecaseのエラーをHTTPレスポンスに変換する
func writeError(c echo.Context, err error) error {
	if ve, ok := usecase.AsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: ve.Fields})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type ProductHandler struct {
	uc      *usecase.ProductUsecase
	storage *upload.Storage
}

func NewProductHandler(uc *usecase.ProductUsecase, storage *upload.Storage) *ProductHandler {
	return &ProductHandler{uc: uc, storage: storage}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	// 変更系は同じパスで管理者のみ
	admin := e.Group("/products")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.remove)
}

func (h *ProductHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.ListPublicProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, uerr := h.uc.GetProductDetail(c.Request().Context(), productID)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return c.JSON(http.StatusOK, p)
}

// multipartフォームから商品入力を組み立てる。imageは任意。
func (h *ProductHandler) bindProductForm(c echo.Context) (usecase.ProductInput, error) {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil && c.FormValue("price") != "" {
		return usecase.ProductInput{}, errors.New("invalid price")
	}

	stock := int64(0)
	if v := c.FormValue("stock"); v != "" {
		stock, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return usecase.ProductInput{}, errors.New("invalid stock")
		}
	}

	isActive := true
	if v := c.FormValue("isActive"); v != "" {
		isActive, err = strconv.ParseBool(v)
		if err != nil {
			return usecase.ProductInput{}, errors.New("invalid isActive")
		}
	}

	in := usecase.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Stock:       stock,
		IsActive:    isActive,
	}

	fh, err := c.FormFile("image")
	if err != nil {
		// 画像なしは許容
		return in, nil
	}

	rel, err := h.storage.Save("products", fh)
	if err != nil {
		return usecase.ProductInput{}, err
	}
	in.Image = rel

	return in, nil
}

func (h *ProductHandler) create(c echo.Context) error {
	in, err := h.bindProductForm(c)
	if err != nil {
		return writeUploadError(c, err)
	}

	p, uerr := h.uc.Create(c.Request().Context(), in)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := h.bindProductForm(c)
	if err != nil {
		return writeUploadError(c, err)
	}

	p, uerr := h.uc.Update(c.Request().Context(), productID, in)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if uerr := h.uc.Delete(c.Request().Context(), productID); uerr != nil {
		return writeError(c, uerr)
	}
	return c.NoContent(http.StatusNoContent)
}

// 画像保存まわりのエラーを400/413に振り分ける
func writeUploadError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
	case errors.Is(err, upload.ErrUnsupportedType):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file type"})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
