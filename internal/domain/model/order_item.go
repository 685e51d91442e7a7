package model

import "time"

// 注文明細。商品名・画像・単価は注文時点のスナップショットを持つ。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	ProductID         int64     `gorm:"not null;index" json:"product_id"`
	NameSnapshot      string    `gorm:"type:varchar(255);not null" json:"name"`
	ThumbnailSnapshot string    `gorm:"type:text" json:"thumbnail"`
	UnitPriceSnapshot int64     `gorm:"not null" json:"unit_price"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
