package payments

import (
	"context"

	"github.com/Govind-619/StudioSite/models"
)

// OrderFilter narrows an operator order listing
type OrderFilter struct {
	Status models.OrderStatus
	Limit  int
	Offset int
}

// OrderPatch holds operator changes; nil fields are left untouched
type OrderPatch struct {
	Status *models.OrderStatus
	Notes  *string
}

// OrderStore persists orders. It holds no business rules: every status write
// goes through Controller, and both writes are conditional on the current status.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	// MarkPaid sets status=paid and the payment id where the order is still
	// pending_payment. It reports whether a row changed.
	MarkPaid(ctx context.Context, razorpayOrderID, paymentID string) (bool, error)
	// Update applies patch where the order still has status expected.
	Update(ctx context.Context, id uint, expected models.OrderStatus, patch OrderPatch) (bool, error)
}
