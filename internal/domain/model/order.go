package model

import "time"

type DeliveryType string

const (
	DeliveryTypeAddress DeliveryType = "ADDRESS"
	DeliveryTypeStation DeliveryType = "RAILWAY_STATION"
	DeliveryTypePickup  DeliveryType = "PICKUP"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// 注文本体。配送情報はDeliveryTypeに一致するレコードだけを1件持つ。
// ゲスト注文はUserIDがnullで、customerスナップショットを埋め込む。
type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *int64 `gorm:"index" json:"userId,omitempty"`

	// ゲスト用の連絡先スナップショット
	CustomerFirstName string `gorm:"type:varchar(255)" json:"customerFirstName,omitempty"`
	CustomerLastName  string `gorm:"type:varchar(255)" json:"customerLastName,omitempty"`
	CustomerEmail     string `gorm:"type:varchar(255)" json:"customerEmail,omitempty"`
	CustomerPhone     string `gorm:"type:varchar(30)" json:"customerPhone,omitempty"`

	DeliveryType   DeliveryType  `gorm:"type:varchar(20);not null;index" json:"deliveryType"`
	Status         OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(20);not null;index" json:"paymentStatus"`
	PaymentMethod  string        `gorm:"type:varchar(50)" json:"paymentMethod"`
	TotalAmount    float64       `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	NotesClient    string        `gorm:"type:text" json:"notesClient,omitempty"`
	NotesAdmin     string        `gorm:"type:text" json:"notesAdmin,omitempty"`
	TrackingNumber string        `gorm:"type:varchar(100)" json:"trackingNumber,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	AddressDelivery *AddressDelivery `gorm:"foreignKey:OrderID" json:"addressDelivery,omitempty"`
	StationDelivery *StationDelivery `gorm:"foreignKey:OrderID" json:"stationDelivery,omitempty"`
	PickupDelivery  *PickupDelivery  `gorm:"foreignKey:OrderID" json:"pickupDelivery,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// ステータス値の妥当性チェック（遷移表は持たない）
func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func IsValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}
