package model

import "time"

// 住所配送。apartment以外は必須。
type AddressDelivery struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64  `gorm:"not null;uniqueIndex" json:"orderId"`
	Street     string `gorm:"type:varchar(255);not null" json:"street"`
	House      string `gorm:"type:varchar(50);not null" json:"house"`
	Apartment  string `gorm:"type:varchar(50)" json:"apartment,omitempty"`
	City       string `gorm:"type:varchar(255);not null" json:"city"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postalCode"`
}

// 駅での受け渡し。
type StationDelivery struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;uniqueIndex" json:"orderId"`
	StationID   int64           `gorm:"not null;index" json:"stationId"`
	Station     *RailwayStation `gorm:"foreignKey:StationID" json:"station,omitempty"`
	MeetingTime time.Time       `gorm:"not null" json:"meetingTime"`
}

// 店舗での受け取り。
type PickupDelivery struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"not null;uniqueIndex" json:"orderId"`
	StoreID    int64     `gorm:"not null;index" json:"storeId"`
	Store      *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	PickupTime time.Time `gorm:"not null" json:"pickupTime"`
}
