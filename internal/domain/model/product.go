package model

import "time"

// メニューの商品。Statusがfalseなら提供停止（一覧に出さない）。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Thumbnail   string    `gorm:"type:text" json:"thumbnail"`
	CategoryID  int64     `gorm:"not null;index" json:"category_id"`
	Status      bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
