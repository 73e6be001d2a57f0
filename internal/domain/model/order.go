package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusReturned   OrderStatus = "RETURNED"
)

// 終端ステータス（ここからの更新は拒否）
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusReturned
}

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodVodafoneCash   PaymentMethod = "VODAFONE_CASH"
	PaymentMethodInstaPay       PaymentMethod = "INSTAPAY"
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// 1注文は1ベンダー。複数ベンダーのカートは注文を分割する。
// 金額とorder_numberは作成後に変更しない（ステータス関連だけ更新可）。
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber   string        `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_number"`
	UserID        string        `gorm:"type:varchar(64);not null;index" json:"user_id"`
	VendorID      int64         `gorm:"not null;index" json:"vendor_id"`
	SubTotal      int64         `gorm:"not null" json:"sub_total"`
	ShippingCost  int64         `gorm:"not null" json:"shipping_cost"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`

	OrderDate   time.Time  `gorm:"not null" json:"order_date"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	ShippingFirstName   string      `gorm:"type:varchar(100);not null" json:"shipping_first_name"`
	ShippingLastName    string      `gorm:"type:varchar(100);not null" json:"shipping_last_name"`
	ShippingAddress     string      `gorm:"type:varchar(255);not null" json:"shipping_address"`
	ShippingCity        string      `gorm:"type:varchar(100);not null" json:"shipping_city"`
	ShippingGovernorate Governorate `gorm:"type:varchar(30);not null" json:"shipping_governorate"`
	ShippingPhone       string      `gorm:"type:varchar(30);not null" json:"shipping_phone"`

	Notes              *string `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CancellationReason *string `gorm:"type:varchar(255)" json:"cancellation_reason,omitempty"`

	// 顧客を消しても注文履歴は残す（RESTRICT）
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Vendor Vendor `gorm:"foreignKey:VendorID;constraint:OnDelete:RESTRICT" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
