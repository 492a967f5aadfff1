package model

import "time"

// 受け渡し場所の駅。(city, name)の組は一意。
type RailwayStation struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	City         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_station_city_name" json:"city"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_station_city_name" json:"name"`
	MeetingPoint string    `gorm:"type:text;not null" json:"meetingPoint"`
	Photo        string    `gorm:"type:varchar(500)" json:"photo,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
