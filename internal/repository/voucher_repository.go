package repository

import (
	"context"

	"app/internal/domain/model"
)

type VoucherRepository interface {
	List(ctx context.Context) ([]model.Voucher, error)
	FindByID(ctx context.Context, id int64) (model.Voucher, error)
	FindByCode(ctx context.Context, code string) (model.Voucher, error)

	Create(ctx context.Context, v model.Voucher) (model.Voucher, error)
	Update(ctx context.Context, v model.Voucher) error
	DeleteByID(ctx context.Context, id int64) error
}
