package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// POST /orders のリクエストボディ。ワイヤ形式はフロントに合わせてcamelCase。
type OrderCreateRequest struct {
	DeliveryType  string                     `json:"deliveryType"`
	TotalAmount   float64                    `json:"totalAmount"`
	PaymentMethod string                     `json:"paymentMethod"`
	NotesClient   string                     `json:"notesClient"`
	Items         []usecase.OrderItemInput   `json:"items"`
	Customer      *usecase.GuestCustomerInput `json:"customer"`
	UserID        *int64                     `json:"userId"`
	CreateAccount bool                       `json:"createAccount"`
	Password      string                     `json:"password"`

	AddressDelivery *usecase.AddressDeliveryInput `json:"addressDelivery"`
	StationDelivery *usecase.StationDeliveryInput `json:"stationDelivery"`
	PickupDelivery  *usecase.PickupDeliveryInput  `json:"pickupDelivery"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// checkoutはゲストも通す（トークンがあれば本人として扱う）
	e.POST("/orders", h.create, middleware.OptionalAuthJWT(cfg))

	g := e.Group("/users")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/orders", h.listMine)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 本人確認はトークンだけを信じる（bodyのuserIdは使わない）
	var authedUserID *int64
	if userID, ok := getUserIDFromContext(c); ok {
		authedUserID = &userID
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), authedUserID, usecase.PlaceOrderInput{
		DeliveryType:    req.DeliveryType,
		PaymentMethod:   req.PaymentMethod,
		NotesClient:     req.NotesClient,
		Items:           req.Items,
		Customer:        req.Customer,
		CreateAccount:   req.CreateAccount,
		Password:        req.Password,
		AddressDelivery: req.AddressDelivery,
		StationDelivery: req.StationDelivery,
		PickupDelivery:  req.PickupDelivery,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	userID, ok := v.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
