package model

// 受け取り店舗。現状はNyonの1店舗のみで、起動時にseedする。
type Store struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Address      string `gorm:"type:varchar(255);not null" json:"address"`
	City         string `gorm:"type:varchar(255);not null" json:"city"`
	WorkingHours string `gorm:"type:varchar(100)" json:"workingHours"`
	Phone        string `gorm:"type:varchar(30)" json:"phone,omitempty"`
}
