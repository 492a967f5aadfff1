package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AdminOrderUsecase は管理者による注文の閲覧と
// status / paymentStatus / notesAdmin / trackingNumber の単一フィールド更新を担当する。
type AdminOrderUsecase struct {
	orders repo.OrderRepository
}

func NewAdminOrderUsecase(orders repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders}
}

type AdminOrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
}

// 注文一覧（status / paymentStatus / userId で絞り込み）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.IsValidOrderStatus(f.Status) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if f.PaymentStatus != "" && !model.IsValidPaymentStatus(f.PaymentStatus) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminOrderListOutput{Orders: orders, Total: total}, nil
}

// ステータス更新。遷移表は持たず、どのステータスからどのステータスへも変更できる
// （管理画面の観測挙動をそのまま踏襲。DESIGN.md参照）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(status)
	if !model.IsValidOrderStatus(newStatus) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
		return model.Order{}, translateOrderUpdateErr(err)
	}
	return u.reload(ctx, orderID)
}

// 支払いステータス更新
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, orderID int64, status string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(status)
	if !model.IsValidPaymentStatus(newStatus) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	if err := u.orders.UpdatePaymentStatus(ctx, orderID, model.PaymentStatus(newStatus)); err != nil {
		return model.Order{}, translateOrderUpdateErr(err)
	}
	return u.reload(ctx, orderID)
}

// 管理者メモ更新
func (u *AdminOrderUsecase) UpdateNotes(ctx context.Context, orderID int64, notes string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.orders.UpdateNotesAdmin(ctx, orderID, notes); err != nil {
		return model.Order{}, translateOrderUpdateErr(err)
	}
	return u.reload(ctx, orderID)
}

// 追跡番号更新
func (u *AdminOrderUsecase) UpdateTracking(ctx context.Context, orderID int64, trackingNumber string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.orders.UpdateTrackingNumber(ctx, orderID, strings.TrimSpace(trackingNumber)); err != nil {
		return model.Order{}, translateOrderUpdateErr(err)
	}
	return u.reload(ctx, orderID)
}

func (u *AdminOrderUsecase) reload(ctx context.Context, orderID int64) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, translateOrderUpdateErr(err)
	}
	return o, nil
}

func translateOrderUpdateErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}
