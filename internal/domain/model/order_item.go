package model

import "time"

// 注文明細。Priceは注文時点のスナップショットで、後から商品価格を読み直さない。
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"orderId"`
	ProductID int64     `gorm:"not null;index" json:"productId"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
