package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func (r *ReservationGormRepository) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	var items []model.Reservation

	if err := r.db.WithContext(ctx).
		Where("reserved_date = ?", date).
		Order("reserved_time asc").
		Find(&items).Error; err != nil {
		return []model.Reservation{}, err
	}

	return items, nil
}

func (r *ReservationGormRepository) ListByPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	var items []model.Reservation

	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("reserved_date desc, reserved_time desc").
		Find(&items).Error; err != nil {
		return []model.Reservation{}, err
	}

	return items, nil
}
