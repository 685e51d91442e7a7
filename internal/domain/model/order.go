package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 操作する側の区別。遷移の選択肢が変わる。
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusDelivering, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// completed/cancelledは終端。以後の遷移は受け付けない。
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// 進行方向の次ステータス。終端は自分自身を返す。
func (s OrderStatus) next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusConfirmed, true
	case OrderStatusConfirmed:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusDelivering, true
	case OrderStatusDelivering:
		return OrderStatusCompleted, true
	}
	return s, false
}

// CanTransitionTo は管理者の更新として許されるかどうか。
// 前進は1段ずつ、キャンセルは終端以外から常に可。飛び級と逆行は不可。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	forward, ok := s.next()
	return ok && next == forward
}

type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64       `gorm:"not null;index" json:"user_id"`
	FullName      string      `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone         string      `gorm:"type:varchar(30);not null" json:"phone"`
	Address       string      `gorm:"type:text;not null" json:"address"`
	Note          string      `gorm:"type:text" json:"note"`
	PaymentMethod string      `gorm:"type:varchar(30);not null" json:"payment_method"`
	Subtotal      int64       `gorm:"not null" json:"subtotal"`
	Discount      int64       `gorm:"not null;default:0" json:"discount"`
	Total         int64       `gorm:"not null" json:"total"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	UserVoucherID *int64      `gorm:"index" json:"user_voucher_id"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 顧客はpendingの間だけキャンセルできる。
func (o Order) CanCustomerCancel() bool {
	return o.Status == OrderStatusPending
}

// 管理者は終端以外を更新できる。
func (o Order) CanAdminUpdateStatus() bool {
	return !o.Status.IsTerminal()
}

// NextStatusOptions はactorが選べる遷移先。
func (o Order) NextStatusOptions(actor Actor) []OrderStatus {
	switch actor {
	case ActorCustomer:
		if o.CanCustomerCancel() {
			return []OrderStatus{OrderStatusCancelled}
		}
		return nil
	case ActorAdmin:
		if !o.CanAdminUpdateStatus() {
			return nil
		}
		opts := make([]OrderStatus, 0, 2)
		if forward, ok := o.Status.next(); ok {
			opts = append(opts, forward)
		}
		opts = append(opts, OrderStatusCancelled)
		return opts
	}
	return nil
}
