package usecase

// 支払い方法は固定カタログ。現状オンライン決済は未接続で、
// 使えるのは代引き（cod）だけ。
type PaymentMethod struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"` // available / coming_soon
}

const (
	PaymentMethodStatusAvailable  = "available"
	PaymentMethodStatusComingSoon = "coming_soon"
)

var paymentMethods = []PaymentMethod{
	{Code: "cod", Name: "Thanh toán khi nhận hàng", Status: PaymentMethodStatusAvailable},
	{Code: "momo", Name: "Ví MoMo", Status: PaymentMethodStatusComingSoon},
	{Code: "zalopay", Name: "ZaloPay", Status: PaymentMethodStatusComingSoon},
	{Code: "credit_card", Name: "Thẻ tín dụng", Status: PaymentMethodStatusComingSoon},
}

// ListPaymentMethods は選択肢の一覧（表示用）。
func ListPaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// IsPaymentMethodAvailable はcheckoutで受け付けられるかどうか。
func IsPaymentMethodAvailable(code string) bool {
	for _, m := range paymentMethods {
		if m.Code == code {
			return m.Status == PaymentMethodStatusAvailable
		}
	}
	return false
}
