package repository

import (
	"context"

	"app/internal/domain/model"
)

// 予約は参照のみ。作成・変更はバックエンド未対応。
type ReservationRepository interface {
	ListByDate(ctx context.Context, date string) ([]model.Reservation, error)
	ListByPhone(ctx context.Context, phone string) ([]model.Reservation, error)
}
