package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

// tx用のリポジトリ束
type txRepos struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	carts        repo.CartRepository
	cartItems    repo.CartItemRepository
	products     repo.ProductRepository
	userVouchers repo.UserVoucherRepository
}

func (t *txRepos) Orders() repo.OrderRepository             { return t.orders }
func (t *txRepos) OrderItems() repo.OrderItemRepository     { return t.orderItems }
func (t *txRepos) Carts() repo.CartRepository               { return t.carts }
func (t *txRepos) CartItems() repo.CartItemRepository       { return t.cartItems }
func (t *txRepos) Products() repo.ProductRepository         { return t.products }
func (t *txRepos) UserVouchers() repo.UserVoucherRepository { return t.userVouchers }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// txハンドルに載せ替えたリポジトリでfnを実行する
func (m *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := &txRepos{
			orders:       NewOrderGormRepository(tx),
			orderItems:   NewOrderItemGormRepository(tx),
			carts:        NewCartGormRepository(tx),
			cartItems:    NewCartItemGormRepository(tx),
			products:     NewProductGormRepository(tx),
			userVouchers: NewUserVoucherGormRepository(tx),
		}
		return fn(r)
	})
}
