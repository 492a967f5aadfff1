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

func TestAdminOrderList_InvalidStatusFilter(t *testing.T) {
	orders := new(MockOrderRepository)
	uc := usecase.NewAdminOrderUsecase(orders)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{
		Page:   1,
		Limit:  20,
		Status: "SHIPPED",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	orders.AssertNotCalled(t, "ListAdmin", mock.Anything, mock.Anything)
}

func TestAdminOrderList_PassesFilter(t *testing.T) {
	orders := new(MockOrderRepository)
	userID := int64(7)
	f := repo.AdminOrderListFilter{
		Page:          2,
		Limit:         10,
		Status:        string(model.OrderStatusConfirmed),
		PaymentStatus: string(model.PaymentStatusPaid),
		UserID:        &userID,
	}
	orders.On("ListAdmin", mock.Anything, f).Return([]model.Order{{ID: 1}}, int64(1), nil)

	uc := usecase.NewAdminOrderUsecase(orders)

	out, err := uc.List(context.Background(), f)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Orders, 1)
	orders.AssertExpectations(t)
}

func TestAdminUpdateStatus_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("UpdateStatus", mock.Anything, int64(3), model.OrderStatusDelivered).Return(nil)
	orders.On("FindByID", mock.Anything, int64(3)).Return(model.Order{ID: 3, Status: model.OrderStatusDelivered}, nil)

	uc := usecase.NewAdminOrderUsecase(orders)

	o, err := uc.UpdateStatus(context.Background(), 3, "DELIVERED")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, o.Status)
	orders.AssertExpectations(t)
}

func TestAdminUpdateStatus_InvalidValue(t *testing.T) {
	orders := new(MockOrderRepository)
	uc := usecase.NewAdminOrderUsecase(orders)

	_, err := uc.UpdateStatus(context.Background(), 3, "SHIPPED")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	// 不正な値はDBまで届かない
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_NotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("UpdateStatus", mock.Anything, int64(404), model.OrderStatusCancelled).Return(repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(orders)

	_, err := uc.UpdateStatus(context.Background(), 404, "CANCELLED")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestAdminUpdatePaymentStatus_InvalidValue(t *testing.T) {
	orders := new(MockOrderRepository)
	uc := usecase.NewAdminOrderUsecase(orders)

	_, err := uc.UpdatePaymentStatus(context.Background(), 3, "VOIDED")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	orders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdatePaymentStatus_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("UpdatePaymentStatus", mock.Anything, int64(3), model.PaymentStatusRefunded).Return(nil)
	orders.On("FindByID", mock.Anything, int64(3)).Return(model.Order{ID: 3, PaymentStatus: model.PaymentStatusRefunded}, nil)

	uc := usecase.NewAdminOrderUsecase(orders)

	o, err := uc.UpdatePaymentStatus(context.Background(), 3, "REFUNDED")
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, o.PaymentStatus)
}

func TestAdminUpdateNotes_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("UpdateNotesAdmin", mock.Anything, int64(3), "call before delivery").Return(nil)
	orders.On("FindByID", mock.Anything, int64(3)).Return(model.Order{ID: 3, NotesAdmin: "call before delivery"}, nil)

	uc := usecase.NewAdminOrderUsecase(orders)

	o, err := uc.UpdateNotes(context.Background(), 3, "call before delivery")
	assert.NoError(t, err)
	assert.Equal(t, "call before delivery", o.NotesAdmin)
}

func TestAdminUpdateTracking_TrimsInput(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("UpdateTrackingNumber", mock.Anything, int64(3), "CH-123").Return(nil)
	orders.On("FindByID", mock.Anything, int64(3)).Return(model.Order{ID: 3, TrackingNumber: "CH-123"}, nil)

	uc := usecase.NewAdminOrderUsecase(orders)

	o, err := uc.UpdateTracking(context.Background(), 3, "  CH-123  ")
	assert.NoError(t, err)
	assert.Equal(t, "CH-123", o.TrackingNumber)
}
