package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// discount_typeがpercent/fixed以外だった場合のエラー。
// 黙ってfixed扱いにはしない。
var ErrUnknownDiscountType = errors.New("unknown discount type")

type Voucher struct {
	ID            int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string       `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Description   string       `gorm:"type:text" json:"description"`
	Image         string       `gorm:"type:text" json:"image"`
	DiscountType  DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue int64        `gorm:"not null" json:"discount_value"`
	MinOrder      int64        `gorm:"not null;default:0" json:"min_order"`
	MaxDiscount   int64        `gorm:"not null;default:0" json:"max_discount"`
	StartDate     time.Time    `gorm:"not null" json:"start_date"`
	EndDate       time.Time    `gorm:"not null" json:"end_date"`

	// 1ユーザーが保存できる回数と全体の上限
	UsageLimitPerUser int `gorm:"not null;default:1" json:"usage_limit_per_user"`
	UsageLimitGlobal  int `gorm:"not null;default:100" json:"usage_limit_global"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// DiscountFor は小計に対する割引額を返す。
// 有効期間はここでは見ない（一覧を出す側でIsValidAtで絞る）。
func (v Voucher) DiscountFor(subtotal int64) (int64, error) {
	if subtotal < v.MinOrder {
		return 0, nil
	}

	switch v.DiscountType {
	case DiscountTypeFixed:
		// 小計を超えることもある。最終額はFinalTotalで0に丸める。
		return v.DiscountValue, nil

	case DiscountTypePercent:
		d := decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(v.DiscountValue)).
			Div(decimal.NewFromInt(100)).
			Floor().
			IntPart()
		if v.MaxDiscount > 0 && d > v.MaxDiscount {
			d = v.MaxDiscount
		}
		return d, nil

	default:
		return 0, ErrUnknownDiscountType
	}
}

// FinalTotal は割引後の支払額。マイナスにはしない。
func FinalTotal(subtotal int64, discount int64) int64 {
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}

// IsValidAt は有効期間内（両端含む）かどうか。
func (v Voucher) IsValidAt(now time.Time) bool {
	return !now.Before(v.StartDate) && !now.After(v.EndDate)
}
