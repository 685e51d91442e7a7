package repository

import (
	"context"

	"app/internal/domain/model"
)

// 卓は一覧のみ。CRUDはバックエンド未対応。
type TableRepository interface {
	List(ctx context.Context) ([]model.Table, error)
}
