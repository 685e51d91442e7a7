package model_test

import (
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func percentVoucher(value int64, minOrder int64, maxDiscount int64) model.Voucher {
	return model.Voucher{
		Code:          "PERCENT",
		DiscountType:  model.DiscountTypePercent,
		DiscountValue: value,
		MinOrder:      minOrder,
		MaxDiscount:   maxDiscount,
	}
}

func fixedVoucher(value int64, minOrder int64) model.Voucher {
	return model.Voucher{
		Code:          "FIXED",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: value,
		MinOrder:      minOrder,
	}
}

func TestVoucher_DiscountFor_BelowMinOrder(t *testing.T) {
	v := percentVoucher(10, 100000, 30000)

	d, err := v.DiscountFor(50000)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), d)
	assert.Equal(t, int64(50000), model.FinalTotal(50000, d))
}

func TestVoucher_DiscountFor_PercentCappedByMaxDiscount(t *testing.T) {
	v := percentVoucher(10, 100000, 30000)

	// 10% of 500000 = 50000 だが上限30000で頭打ち
	d, err := v.DiscountFor(500000)
	assert.NoError(t, err)
	assert.Equal(t, int64(30000), d)
	assert.Equal(t, int64(470000), model.FinalTotal(500000, d))
}

func TestVoucher_DiscountFor_PercentUncapped(t *testing.T) {
	// max_discount=0 は無制限
	v := percentVoucher(10, 0, 0)

	d, err := v.DiscountFor(500000)
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), d)
}

func TestVoucher_DiscountFor_PercentFloorsFraction(t *testing.T) {
	v := percentVoucher(3, 0, 0)

	// 3% of 10001 = 300.03 → 300
	d, err := v.DiscountFor(10001)
	assert.NoError(t, err)
	assert.Equal(t, int64(300), d)
}

func TestVoucher_DiscountFor_Fixed(t *testing.T) {
	v := fixedVoucher(20000, 0)

	d, err := v.DiscountFor(200000)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), d)
	assert.Equal(t, int64(180000), model.FinalTotal(200000, d))
}

func TestVoucher_DiscountFor_FixedExceedsSubtotal(t *testing.T) {
	v := fixedVoucher(20000, 0)

	// 割引が小計を超える。割引額はそのまま、支払額は0に丸める。
	d, err := v.DiscountFor(10000)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), d)
	assert.Equal(t, int64(0), model.FinalTotal(10000, d))
}

func TestVoucher_DiscountFor_UnknownTypeIsError(t *testing.T) {
	v := model.Voucher{
		Code:          "BROKEN",
		DiscountType:  model.DiscountType("bogus"),
		DiscountValue: 10,
	}

	d, err := v.DiscountFor(100000)
	assert.ErrorIs(t, err, model.ErrUnknownDiscountType)
	assert.Equal(t, int64(0), d)
}

func TestVoucher_DiscountFor_Idempotent(t *testing.T) {
	v := percentVoucher(10, 100000, 30000)

	d1, err1 := v.DiscountFor(500000)
	d2, err2 := v.DiscountFor(500000)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, d1, d2)
}

func TestFinalTotal_NeverNegative(t *testing.T) {
	assert.Equal(t, int64(0), model.FinalTotal(0, 1000))
	assert.Equal(t, int64(0), model.FinalTotal(500, 500))
	assert.Equal(t, int64(1), model.FinalTotal(501, 500))
}

func TestVoucher_IsValidAt_InclusiveWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	v := model.Voucher{StartDate: start, EndDate: end}

	assert.False(t, v.IsValidAt(start.Add(-time.Second)))
	assert.True(t, v.IsValidAt(start))
	assert.True(t, v.IsValidAt(start.AddDate(0, 0, 15)))
	assert.True(t, v.IsValidAt(end))
	assert.False(t, v.IsValidAt(end.Add(time.Second)))
}
