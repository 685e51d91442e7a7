package repository

import (
	"context"

	"app/internal/domain/model"
)

type UserVoucherRepository interface {
	// Voucherをpreloadして返す
	ListByUserID(ctx context.Context, userID int64) ([]model.UserVoucher, error)
	FindByID(ctx context.Context, id int64) (model.UserVoucher, error)
	// 未使用のものだけ探す
	FindUnusedByUserAndCode(ctx context.Context, userID int64, code string) (model.UserVoucher, error)

	Create(ctx context.Context, uv model.UserVoucher) (model.UserVoucher, error)
	MarkUsed(ctx context.Context, id int64) error

	// 保存回数の上限チェック用
	CountByUserAndVoucher(ctx context.Context, userID int64, voucherID int64) (int64, error)
	CountByVoucher(ctx context.Context, voucherID int64) (int64, error)
}
