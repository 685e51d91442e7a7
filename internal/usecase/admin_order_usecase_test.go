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

func TestAdminOrderUsecase_List_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20}

	orders := []model.Order{
		{ID: 10, Status: model.OrderStatusPending},
		{ID: 11, Status: model.OrderStatusPreparing},
	}

	ordersRepo.On("ListAdmin", mock.Anything, f).Return(orders, int64(2), nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	out, err := uc.List(ctx, f)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out.Items))
	assert.Equal(t, int64(2), out.Total)

	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_List_InvalidStatus(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "shipped"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderUsecase_UpdateStatus_Unauthorized(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.UpdateStatus(context.Background(), 0, 1, usecase.AdminUpdateOrderStatusInput{Status: "confirmed"})
	assertErrContains(t, err, "unauthorized")
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.UpdateStatus(context.Background(), 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderUsecase_UpdateStatus_ForwardStep(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusPending,
	}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 1 &&
			l.BeforeJSON == `{"status":"pending"}` &&
			l.AfterJSON == `{"status":"confirmed"}`
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	out, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "confirmed"})
	assert.NoError(t, err)
	assert.Equal(t, "confirmed", out.Status)
	assert.Equal(t, []string{"preparing", "cancelled"}, out.NextOptions)

	ordersRepo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_SkipStepRejected(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//pending→deliveringの飛び級は不可
	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusPending,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "delivering"})
	assertErrContains(t, err, "invalid transition")

	ordersRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_BackwardRejected(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivering,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "preparing"})
	assertErrContains(t, err, "invalid transition")
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusNoOp(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusPreparing,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	out, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "preparing"})
	assert.NoError(t, err)
	assert.Equal(t, "preparing", out.Status)

	ordersRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_TerminalRejected(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//cancelledからはどこへも動かせない
	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusCancelled,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "pending"})
	assertErrContains(t, err, "invalid transition")
}

func TestAdminOrderUsecase_UpdateStatus_CancelFromDelivering(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivering,
	}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusCancelled).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	out, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)
	assert.Empty(t, out.NextOptions)
}

func TestAdminOrderUsecase_UpdateStatus_CompletedConsumesVoucher(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)
	userVouchersRepo := new(UserVoucherRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, userVouchers: userVouchersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	uvID := int64(9)
	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivering, UserVoucherID: &uvID,
	}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusCompleted).Return(nil)
	//completed到達でバウチャーが使用済みになる
	userVouchersRepo.On("MarkUsed", mock.Anything, uvID).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	out, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "completed"})
	assert.NoError(t, err)
	assert.Equal(t, "completed", out.Status)

	userVouchersRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_CancelDoesNotConsumeVoucher(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	ordersRepo := new(OrderRepoMock)
	userVouchersRepo := new(UserVoucherRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, userVouchers: userVouchersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	uvID := int64(9)
	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusPending, UserVoucherID: &uvID,
	}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusCancelled).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	_, err := uc.UpdateStatus(ctx, 7, 1, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)

	userVouchersRepo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything)
}
