package model

import "time"

// ユーザーが保存したバウチャー。
// Usedは注文がcompletedになった時点でtrueにする（注文確定時ではない）。
type UserVoucher struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_user_vouchers_user" json:"user_id"`
	VoucherID int64     `gorm:"not null;index" json:"voucher_id"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Voucher Voucher `gorm:"foreignKey:VoucherID" json:"voucher"`
}
