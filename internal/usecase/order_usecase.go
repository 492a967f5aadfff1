package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	auth "app/internal/usecase/auth_usecase"
)

// 受け渡し時刻は最低でも今から24時間後
const MinDeliveryLead = 24 * time.Hour

// OrderUsecase は注文の組み立て（checkout）と自分の注文履歴を担当する。
type OrderUsecase struct {
	tx       repo.TransactionManager
	stations repo.StationRepository
	stores   repo.StoreRepository
	hasher   auth.PasswordHasher
	issuer   auth.AccessTokenIssuer
	clock    Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	stations repo.StationRepository,
	stores repo.StoreRepository,
	hasher auth.PasswordHasher,
	issuer auth.AccessTokenIssuer,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		stations: stations,
		stores:   stores,
		hasher:   hasher,
		issuer:   issuer,
		clock:    clock,
	}
}

type OrderItemInput struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type GuestCustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type AddressDeliveryInput struct {
	Street     string `json:"street"`
	House      string `json:"house"`
	Apartment  string `json:"apartment"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type StationDeliveryInput struct {
	StationID   int64     `json:"stationId"`
	MeetingTime time.Time `json:"meetingTime"`
}

type PickupDeliveryInput struct {
	StoreID    int64     `json:"storeId"`
	PickupTime time.Time `json:"pickupTime"`
}

type PlaceOrderInput struct {
	DeliveryType  string
	PaymentMethod string
	NotesClient   string
	Items         []OrderItemInput

	// ゲスト用。認証済みならどちらも無視する。
	Customer      *GuestCustomerInput
	CreateAccount bool
	Password      string

	AddressDelivery *AddressDeliveryInput
	StationDelivery *StationDeliveryInput
	PickupDelivery  *PickupDeliveryInput
}

type PlaceOrderOutput struct {
	Order model.Order `json:"order"`
	// createAccount時のみ。作成したアカウントで即ログインできる。
	Token string `json:"token,omitempty"`
}

// PlaceOrder はカートの内容から注文を1件組み立てる。
// Order＋配送レコード1件＋明細は1トランザクションで書く（途中までの注文は残さない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, authedUserID *int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	var out PlaceOrderOutput

	if len(in.Items) == 0 {
		return out, NewValidationError("cart-empty")
	}

	fields := []string{}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity < 1 || it.Price < 0 {
			fields = append(fields, "items")
			break
		}
	}

	now := u.clock.Now()
	minTime := now.Add(MinDeliveryLead)

	order := model.Order{
		DeliveryType:  model.DeliveryType(in.DeliveryType),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		NotesClient:   in.NotesClient,
	}

	// 配送種別ごとの検証。deliveryTypeと一致するレコードだけを組み立てる。
	var addressDelivery *model.AddressDelivery
	var stationDelivery *model.StationDelivery
	var pickupDelivery *model.PickupDelivery

	switch model.DeliveryType(in.DeliveryType) {
	case model.DeliveryTypeAddress:
		d := in.AddressDelivery
		if d == nil {
			fields = append(fields, "street", "house", "city", "postalCode")
			break
		}
		if strings.TrimSpace(d.Street) == "" {
			fields = append(fields, "street")
		}
		if strings.TrimSpace(d.House) == "" {
			fields = append(fields, "house")
		}
		if strings.TrimSpace(d.City) == "" {
			fields = append(fields, "city")
		}
		if strings.TrimSpace(d.PostalCode) == "" {
			fields = append(fields, "postalCode")
		}
		addressDelivery = &model.AddressDelivery{
			Street:     strings.TrimSpace(d.Street),
			House:      strings.TrimSpace(d.House),
			Apartment:  strings.TrimSpace(d.Apartment),
			City:       strings.TrimSpace(d.City),
			PostalCode: strings.TrimSpace(d.PostalCode),
		}

	case model.DeliveryTypeStation:
		d := in.StationDelivery
		if d == nil {
			fields = append(fields, "stationId", "meetingTime")
			break
		}
		if _, err := u.stations.FindByID(ctx, d.StationID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return out, NewValidationError("station-not-found")
			}
			return out, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if d.MeetingTime.IsZero() {
			fields = append(fields, "meetingTime")
			break
		}
		// 24時間未満は拒否せず下限まで引き上げる（clamp）
		meetingTime := d.MeetingTime
		if meetingTime.Before(minTime) {
			meetingTime = minTime
		}
		stationDelivery = &model.StationDelivery{
			StationID:   d.StationID,
			MeetingTime: meetingTime,
		}

	case model.DeliveryTypePickup:
		d := in.PickupDelivery
		if d == nil {
			fields = append(fields, "storeId", "pickupTime")
			break
		}
		if _, err := u.stores.FindByID(ctx, d.StoreID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return out, NewValidationError("store-not-found")
			}
			return out, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if d.PickupTime.IsZero() {
			fields = append(fields, "pickupTime")
			break
		}
		pickupTime := d.PickupTime
		if pickupTime.Before(minTime) {
			pickupTime = minTime
		}
		pickupDelivery = &model.PickupDelivery{
			StoreID:    d.StoreID,
			PickupTime: pickupTime,
		}

	default:
		return out, NewValidationError("invalid-delivery-type")
	}

	// 本人確認。認証済みならゲスト項目は無視する。
	if authedUserID != nil {
		order.UserID = authedUserID
	} else {
		c := in.Customer
		if c == nil {
			fields = append(fields, "firstName", "lastName", "email", "phone")
		} else {
			if strings.TrimSpace(c.FirstName) == "" {
				fields = append(fields, "firstName")
			}
			if strings.TrimSpace(c.LastName) == "" {
				fields = append(fields, "lastName")
			}
			if strings.TrimSpace(c.Email) == "" {
				fields = append(fields, "email")
			}
			if strings.TrimSpace(c.Phone) == "" {
				fields = append(fields, "phone")
			}
			order.CustomerFirstName = strings.TrimSpace(c.FirstName)
			order.CustomerLastName = strings.TrimSpace(c.LastName)
			order.CustomerEmail = strings.TrimSpace(c.Email)
			order.CustomerPhone = strings.TrimSpace(c.Phone)
		}
		if in.CreateAccount && len(in.Password) < 8 {
			fields = append(fields, "password")
		}
	}

	if len(fields) > 0 {
		return out, &ValidationError{Fields: fields}
	}

	// 合計はクライアント申告のitems[].priceをそのまま信じて合算する
	// （カタログ価格での再計算はしない。DESIGN.md参照）
	var total float64
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
		total += it.Price * float64(it.Quantity)
	}
	order.TotalAmount = total

	var createdUser *model.User

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// ゲストがアカウント作成を希望したら同じトランザクションで作る
		if authedUserID == nil && in.CreateAccount {
			existing, err := r.Users().FindByEmail(ctx, order.CustomerEmail)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if existing != nil {
				return NewHTTPError(http.StatusConflict, "email already exists")
			}

			hashed, err := u.hasher.Hash(in.Password)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "hash error")
			}

			user := &model.User{
				Email:        order.CustomerEmail,
				PasswordHash: hashed,
				FirstName:    order.CustomerFirstName,
				LastName:     order.CustomerLastName,
				Phone:        order.CustomerPhone,
				Role:         model.RoleClient,
				IsActive:     true,
			}
			if err := r.Users().Create(ctx, user); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			createdUser = user
			order.UserID = &user.ID
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		order.ID = orderID

		// deliveryTypeと一致する配送レコードを1件だけ書く
		switch {
		case addressDelivery != nil:
			addressDelivery.OrderID = orderID
			if _, err := r.Deliveries().CreateAddress(ctx, *addressDelivery); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		case stationDelivery != nil:
			stationDelivery.OrderID = orderID
			if _, err := r.Deliveries().CreateStation(ctx, *stationDelivery); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		case pickupDelivery != nil:
			pickupDelivery.OrderID = orderID
			if _, err := r.Deliveries().CreatePickup(ctx, *pickupDelivery); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return out, err
	}

	order.Items = items
	order.AddressDelivery = addressDelivery
	order.StationDelivery = stationDelivery
	order.PickupDelivery = pickupDelivery
	out.Order = order

	// 作ったアカウントで即ログインできるようにトークンを返す
	if createdUser != nil {
		token, _, err := u.issuer.Issue(createdUser.ID, createdUser.Role, now)
		if err != nil {
			return out, NewHTTPError(http.StatusInternalServerError, "token error")
		}
		out.Token = token
	}

	return out, nil
}

// ListMyOrders は自分の注文履歴（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return []model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var orders []model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		orders, _, err = r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}
