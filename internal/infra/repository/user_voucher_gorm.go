package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserVoucherGormRepository struct {
	db *gorm.DB
}

func NewUserVoucherGormRepository(db *gorm.DB) *UserVoucherGormRepository {
	return &UserVoucherGormRepository{db: db}
}

// Voucher本体も一緒に返す
func (r *UserVoucherGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.UserVoucher, error) {
	var items []model.UserVoucher

	if err := r.db.WithContext(ctx).
		Preload("Voucher").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return []model.UserVoucher{}, err
	}

	return items, nil
}

func (r *UserVoucherGormRepository) FindByID(ctx context.Context, id int64) (model.UserVoucher, error) {
	var uv model.UserVoucher

	err := r.db.WithContext(ctx).
		Preload("Voucher").
		Where("id = ?", id).
		First(&uv).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.UserVoucher{}, repo.ErrNotFound
	}
	if err != nil {
		return model.UserVoucher{}, err
	}
	return uv, nil
}

// 未使用の保有クーポンをコードで探す
func (r *UserVoucherGormRepository) FindUnusedByUserAndCode(ctx context.Context, userID int64, code string) (model.UserVoucher, error) {
	var uv model.UserVoucher

	err := r.db.WithContext(ctx).
		Preload("Voucher").
		Joins("join vouchers on vouchers.id = user_vouchers.voucher_id").
		Where("user_vouchers.user_id = ? AND user_vouchers.used = ? AND vouchers.code = ?", userID, false, code).
		Order("user_vouchers.id asc").
		First(&uv).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.UserVoucher{}, repo.ErrNotFound
	}
	if err != nil {
		return model.UserVoucher{}, err
	}
	return uv, nil
}

func (r *UserVoucherGormRepository) Create(ctx context.Context, uv model.UserVoucher) (model.UserVoucher, error) {
	if err := r.db.WithContext(ctx).Create(&uv).Error; err != nil {
		return model.UserVoucher{}, err
	}
	return uv, nil
}

func (r *UserVoucherGormRepository) MarkUsed(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserVoucher{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserVoucherGormRepository) CountByUserAndVoucher(ctx context.Context, userID int64, voucherID int64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.UserVoucher{}).
		Where("user_id = ? AND voucher_id = ?", userID, voucherID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserVoucherGormRepository) CountByVoucher(ctx context.Context, voucherID int64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.UserVoucher{}).
		Where("voucher_id = ?", voucherID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}
	return count, nil
}
