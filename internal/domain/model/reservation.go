package model

import "time"

// 予約。日付・電話番号での参照のみ対応（作成・変更は未対応）。
type Reservation struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TableID      int64     `gorm:"not null;index" json:"table_id"`
	CustomerName string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	Phone        string    `gorm:"type:varchar(30);not null;index" json:"phone"`
	ReservedDate string    `gorm:"type:varchar(10);not null;index" json:"reserved_date"` // YYYY-MM-DD
	ReservedTime string    `gorm:"type:varchar(5);not null" json:"reserved_time"`        // HH:MM
	Guests       int       `gorm:"not null" json:"guests"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
