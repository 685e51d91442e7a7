package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

// DI
func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo}
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type AdminUpdateOrderStatusOutput struct {
	OrderID     int64    `json:"order_id"`
	Status      string   `json:"status"`
	NextOptions []string `json:"next_options"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Status != "" && !model.OrderStatus(f.Status).IsValid() {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			items = append(items, toOrderOutput(o, lines))
		}

		out = AdminOrderListOutput{
			Items: items,
			Total: total,
			Page:  f.Page,
			Limit: f.Limit,
		}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// UpdateStatus は管理者によるステータス更新。
// 前進は1段ずつ、キャンセルは終端以外から。飛び級・逆行は409。
// completedに入った時点でバウチャーを使用済みにする。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) (AdminUpdateOrderStatusOutput, error) {
	if adminUserID <= 0 {
		return AdminUpdateOrderStatusOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return AdminUpdateOrderStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	next := model.OrderStatus(in.Status)
	if !next.IsValid() {
		return AdminUpdateOrderStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out AdminUpdateOrderStatusOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じステータスならno-op（成功扱い）
		if o.Status == next {
			out = AdminUpdateOrderStatusOutput{
				OrderID:     orderID,
				Status:      string(o.Status),
				NextOptions: statusOptions(o, model.ActorAdmin),
			}
			return nil
		}

		if !o.Status.CanTransitionTo(next) {
			return NewHTTPError(http.StatusConflict, "invalid transition")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//completed到達でバウチャー消費を確定
		if next == model.OrderStatusCompleted && o.UserVoucherID != nil {
			if err := r.UserVouchers().MarkUsed(ctx, *o.UserVoucherID); err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//監査ログを作成（注文ステータス更新）
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   fmt.Sprintf(`{"status":%q}`, o.Status),
			AfterJSON:    fmt.Sprintf(`{"status":%q}`, next),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = next
		out = AdminUpdateOrderStatusOutput{
			OrderID:     orderID,
			Status:      string(next),
			NextOptions: statusOptions(o, model.ActorAdmin),
		}
		return nil
	})

	if err != nil {
		return AdminUpdateOrderStatusOutput{}, err
	}
	return out, nil
}

// ListAuditLogs は管理者操作の履歴を新しい順に返す。
func (u *AdminOrderUsecase) ListAuditLogs(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Action != nil && *f.Action == "" {
		f.Action = nil
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

func statusOptions(o model.Order, actor model.Actor) []string {
	opts := o.NextStatusOptions(actor)
	out := make([]string, 0, len(opts))
	for _, s := range opts {
		out = append(out, string(s))
	}
	return out
}
