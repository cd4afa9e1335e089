package models

import (
	"time"
)

// OrderStatus is the lifecycle state of a purchase order
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// DefaultCurrency is used when a checkout request omits the currency
const DefaultCurrency = "INR"

// orderTransitions lists the forward moves allowed out of each status.
// delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusInProgress:     {OrderStatusDelivered, OrderStatusCancelled},
}

// OrderStatuses returns every known status in lifecycle order
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPendingPayment,
		OrderStatusPaid,
		OrderStatusInProgress,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// ParseOrderStatus converts raw input into an OrderStatus
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	for _, s := range OrderStatuses() {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// IsValid reports whether s is one of the enumerated statuses
func (s OrderStatus) IsValid() bool {
	_, ok := ParseOrderStatus(string(s))
	return ok
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a forward step
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a single checkout attempt for a product or service.
// Amount is stored in minor currency units (paise for INR).
type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	Product           string      `gorm:"not null" json:"product"`
	Amount            int64       `gorm:"not null" json:"amount"`
	Currency          string      `gorm:"type:varchar(8);not null;default:INR" json:"currency"`
	Name              string      `gorm:"not null" json:"name"`
	Email             string      `gorm:"not null" json:"email"`
	Phone             string      `gorm:"not null" json:"phone"`
	Status            OrderStatus `gorm:"type:varchar(32);not null;default:pending_payment;index" json:"status"`
	RazorpayOrderID   string      `gorm:"uniqueIndex;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string      `json:"razorpay_payment_id,omitempty"`
	Notes             string      `json:"notes"`
	PaidAt            *time.Time  `json:"paid_at,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// IsPaid reports whether a verified payment has been recorded on the order
func (o *Order) IsPaid() bool {
	return o.RazorpayPaymentID != ""
}
