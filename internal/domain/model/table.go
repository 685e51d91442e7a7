package model

import "time"

// 店内の卓。一覧のみ公開。CRUDはバックエンド未対応。
type Table struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Seats     int       `gorm:"not null" json:"seats"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
