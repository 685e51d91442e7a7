package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		FullName:      "Nguyen Van A",
		Phone:         "0901234567",
		Address:       "123 Le Loi, Q1",
		PaymentMethod: "cod",
	}
}

func TestOrderUsecase_Checkout_Unauthorized(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.Checkout(context.Background(), 0, checkoutInput())
	assertErrContains(t, err, "unauthorized")
}

func TestOrderUsecase_Checkout_MissingAddress(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewOrderUsecase(tx)

	in := checkoutInput()
	in.Address = "  "

	_, err := uc.Checkout(context.Background(), 1, in)
	assertErrContains(t, err, "address required")
}

func TestOrderUsecase_Checkout_PaymentMethodComingSoon(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewOrderUsecase(tx)

	in := checkoutInput()
	in.PaymentMethod = "momo"

	_, err := uc.Checkout(context.Background(), 1, in)
	assertErrContains(t, err, "payment method not available")
}

func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	itemsRepo := new(CartItemRepoMock)

	tx.Repos = &TxReposMock{carts: cartsRepo, cartItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, UserID: 1}, nil)
	itemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.Checkout(ctx, 1, checkoutInput())
	assertErrContains(t, err, "cart empty")
}

func TestOrderUsecase_Checkout_Success_WithPercentVoucher(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	itemsRepo := new(CartItemRepoMock)
	productsRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)
	orderItemsRepo := new(OrderItemRepoMock)
	userVouchersRepo := new(UserVoucherRepoMock)

	tx.Repos = &TxReposMock{
		orders:       ordersRepo,
		orderItems:   orderItemsRepo,
		carts:        cartsRepo,
		cartItems:    itemsRepo,
		products:     productsRepo,
		userVouchers: userVouchersRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, UserID: 1}, nil)
	itemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 100, CartID: 5, ProductID: 7, Quantity: 2},
	}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Pho bo", Price: 250000, Status: true,
	}, nil)

	//10%オフ、上限30000
	v := validVoucher(3, model.DiscountTypePercent, 10)
	v.MaxDiscount = 30000
	userVouchersRepo.On("FindUnusedByUserAndCode", mock.Anything, int64(1), "SAVE10").Return(model.UserVoucher{
		ID: 9, UserID: 1, VoucherID: 3, Voucher: v,
	}, nil)

	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		// 小計500000、10%=50000だが上限30000でキャップ
		return o.Subtotal == 500000 &&
			o.Discount == 30000 &&
			o.Total == 470000 &&
			o.Status == model.OrderStatusPending &&
			o.UserVoucherID != nil && *o.UserVoucherID == 9
	})).Return(int64(42), nil)
	orderItemsRepo.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	cartsRepo.On("UpdateStatus", mock.Anything, int64(5), model.CartStatusCheckedOut).Return(nil)
	cartsRepo.On("Clear", mock.Anything, int64(5)).Return(nil)

	uc := usecase.NewOrderUsecase(tx)

	in := checkoutInput()
	in.VoucherCode = "SAVE10"

	out, err := uc.Checkout(ctx, 1, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, int64(500000), out.Subtotal)
	assert.Equal(t, int64(30000), out.Discount)
	assert.Equal(t, int64(470000), out.Total)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(250000), out.Items[0].UnitPrice)

	ordersRepo.AssertExpectations(t)
	cartsRepo.AssertExpectations(t)
}

func TestOrderUsecase_Checkout_FixedVoucherExceedsSubtotal(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	itemsRepo := new(CartItemRepoMock)
	productsRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)
	orderItemsRepo := new(OrderItemRepoMock)
	userVouchersRepo := new(UserVoucherRepoMock)

	tx.Repos = &TxReposMock{
		orders:       ordersRepo,
		orderItems:   orderItemsRepo,
		carts:        cartsRepo,
		cartItems:    itemsRepo,
		products:     productsRepo,
		userVouchers: userVouchersRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	itemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 100, CartID: 5, ProductID: 7, Quantity: 1},
	}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Tra da", Price: 10000, Status: true,
	}, nil)

	//割引が小計を超えても合計は0で止まる
	userVouchersRepo.On("FindUnusedByUserAndCode", mock.Anything, int64(1), "SAVE10").Return(model.UserVoucher{
		ID: 9, Voucher: validVoucher(3, model.DiscountTypeFixed, 20000),
	}, nil)

	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Subtotal == 10000 && o.Discount == 20000 && o.Total == 0
	})).Return(int64(43), nil)
	orderItemsRepo.On("CreateBulk", mock.Anything, int64(43), mock.Anything).Return(nil)
	cartsRepo.On("UpdateStatus", mock.Anything, int64(5), model.CartStatusCheckedOut).Return(nil)
	cartsRepo.On("Clear", mock.Anything, int64(5)).Return(nil)

	uc := usecase.NewOrderUsecase(tx)

	in := checkoutInput()
	in.VoucherCode = "SAVE10"

	out, err := uc.Checkout(ctx, 1, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Total)
}

func TestOrderUsecase_Checkout_UnknownDiscountType(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	itemsRepo := new(CartItemRepoMock)
	productsRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)
	userVouchersRepo := new(UserVoucherRepoMock)

	tx.Repos = &TxReposMock{
		orders:       ordersRepo,
		carts:        cartsRepo,
		cartItems:    itemsRepo,
		products:     productsRepo,
		userVouchers: userVouchersRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	itemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 100, CartID: 5, ProductID: 7, Quantity: 1},
	}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Price: 100000, Status: true,
	}, nil)

	//DBに不正なdiscount_typeが入っていた場合は黙ってfixed扱いにしない
	bad := validVoucher(3, model.DiscountType("bogo"), 10)
	userVouchersRepo.On("FindUnusedByUserAndCode", mock.Anything, int64(1), "SAVE10").Return(model.UserVoucher{
		ID: 9, Voucher: bad,
	}, nil)

	uc := usecase.NewOrderUsecase(tx)

	in := checkoutInput()
	in.VoucherCode = "SAVE10"

	_, err := uc.Checkout(ctx, 1, in)
	assertErrContains(t, err, "invalid discount type")

	ordersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Checkout_VoucherNotOwned(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	itemsRepo := new(CartItemRepoMock)
	productsRepo := new(ProductRepoMock)
	userVouchersRepo := new(UserVoucherRepoMock)

	tx.Repos = &TxReposMock{
		carts:        cartsRepo,
		cartItems:    itemsRepo,
		products:     productsRepo,
		userVouchers: userVouchersRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	itemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 100, CartID: 5, ProductID: 7, Quantity: 1},
	}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Price: 100000, Status: true,
	}, nil)
	userVouchersRepo.On("FindUnusedByUserAndCode", mock.Anything, int64(1), "NOPE").Return(model.UserVoucher{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(tx)

	in := checkoutInput()
	in.VoucherCode = "NOPE"

	_, err := uc.Checkout(ctx, 1, in)
	assertErrContains(t, err, "voucher not available")
}

func TestOrderUsecase_CancelMyOrder_Pending(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	orderItemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: orderItemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, UserID: 1, Status: model.OrderStatusPending,
	}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusCancelled).Return(nil)
	orderItemsRepo.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewOrderUsecase(tx)

	out, err := uc.CancelMyOrder(ctx, 1, 42)
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)

	ordersRepo.AssertExpectations(t)
}

func TestOrderUsecase_CancelMyOrder_AfterConfirmed(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//確定後は顧客からはキャンセル不可
	ordersRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, UserID: 1, Status: model.OrderStatusConfirmed,
	}, nil)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.CancelMyOrder(ctx, 1, 42)
	assertErrContains(t, err, "cannot be cancelled")

	ordersRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CancelMyOrder_NotOwner(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//他人の注文は存在しない扱い
	ordersRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, UserID: 2, Status: model.OrderStatusPending,
	}, nil)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.CancelMyOrder(ctx, 1, 42)
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_GetMyOrderDetail_NotOwner(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, UserID: 9, Status: model.OrderStatusPending,
	}, nil)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.GetMyOrderDetail(ctx, 1, 42)
	assertErrContains(t, err, "not found")
}
