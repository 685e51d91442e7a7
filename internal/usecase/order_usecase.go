package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CheckoutInput struct {
	FullName      string
	Phone         string
	Address       string
	Note          string
	PaymentMethod string
	VoucherCode   string
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	FullName      string            `json:"full_name"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	Note          string            `json:"note"`
	PaymentMethod string            `json:"payment_method"`
	Subtotal      int64             `json:"subtotal"`
	Discount      int64             `json:"discount"`
	Total         int64             `json:"total"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// Checkout はカートの中身から注文を作る。
// 小計は商品の現在価格、割引は保存済みバウチャーから計算する。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "full_name required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address required")
	}

	//利用可能な支払い方法だけ受け付ける
	if !IsPaymentMethodAvailable(in.PaymentMethod) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment method not available")
	}

	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ACTIVEカート取得
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カート明細取得
		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//現在価格で小計を出し、スナップショットを作る
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var subtotal int64 = 0
		now := time.Now()

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product unavailable")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.Status {
				return NewHTTPError(http.StatusBadRequest, "product unavailable")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:         ci.ProductID,
				NameSnapshot:      p.Name,
				ThumbnailSnapshot: p.Thumbnail,
				UnitPriceSnapshot: p.Price,
				Quantity:          ci.Quantity,
				CreatedAt:         now,
			})

			subtotal += p.Price * ci.Quantity
		}

		//バウチャー適用（任意）
		var discount int64 = 0
		var userVoucherID *int64

		code := strings.TrimSpace(in.VoucherCode)
		if code != "" {
			uv, err := r.UserVouchers().FindUnusedByUserAndCode(ctx, userID, code)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "voucher not available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if !uv.Voucher.IsValidAt(now) {
				return NewHTTPError(http.StatusBadRequest, "voucher expired")
			}

			d, err := uv.Voucher.DiscountFor(subtotal)
			if errors.Is(err, model.ErrUnknownDiscountType) {
				return NewHTTPError(http.StatusBadRequest, "invalid discount type")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "discount error")
			}

			discount = d
			userVoucherID = &uv.ID
		}

		total := model.FinalTotal(subtotal, discount)

		//注文作成
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			FullName:      strings.TrimSpace(in.FullName),
			Phone:         strings.TrimSpace(in.Phone),
			Address:       strings.TrimSpace(in.Address),
			Note:          in.Note,
			PaymentMethod: in.PaymentMethod,
			Subtotal:      subtotal,
			Discount:      discount,
			Total:         total,
			Status:        model.OrderStatusPending,
			UserVoucherID: userVoucherID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをCHECKED_OUTにして、明細をクリア（再注文防止）
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:            orderID,
			UserID:        userID,
			FullName:      strings.TrimSpace(in.FullName),
			Phone:         strings.TrimSpace(in.Phone),
			Address:       strings.TrimSpace(in.Address),
			Note:          in.Note,
			PaymentMethod: in.PaymentMethod,
			Subtotal:      subtotal,
			Discount:      discount,
			Total:         total,
			Status:        model.OrderStatusPending,
			UserVoucherID: userVoucherID,
			CreatedAt:     now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
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

		out = OrderListOutput{
			Items: items,
			Total: total,
			Page:  page,
			Limit: limit,
		}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelMyOrder は顧客によるキャンセル。pendingの間だけ。
func (u *OrderUsecase) CancelMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if !o.CanCustomerCancel() {
			return NewHTTPError(http.StatusConflict, "order cannot be cancelled")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.NameSnapshot,
			Thumbnail: it.ThumbnailSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		FullName:      o.FullName,
		Phone:         o.Phone,
		Address:       o.Address,
		Note:          o.Note,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Total:         o.Total,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
