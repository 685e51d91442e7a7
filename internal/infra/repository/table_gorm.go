package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type TableGormRepository struct {
	db *gorm.DB
}

func NewTableGormRepository(db *gorm.DB) *TableGormRepository {
	return &TableGormRepository{db: db}
}

func (r *TableGormRepository) List(ctx context.Context) ([]model.Table, error) {
	var items []model.Table
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Table{}, err
	}
	return items, nil
}
