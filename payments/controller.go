package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/utils"
)

// Buyer identifies who is paying
type Buyer struct {
	Name  string
	Email string
	Phone string
}

// CreateOrderRequest is a checkout attempt for a single product or service
type CreateOrderRequest struct {
	Amount   int64
	Currency string
	Product  string
	Buyer    Buyer
}

// CreateOrderResult is what the client needs to open the checkout widget.
// It never carries the key secret.
type CreateOrderResult struct {
	OrderID  string
	Amount   int64
	Currency string
	KeyID    string
}

// VerifyRequest is the completion callback forwarded by the client
type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyResult reports an authentic payment. Recorded is false when the
// signature was valid but no local order carries the remote order id.
// Transitioned is true only for the call that moved the order to paid.
type VerifyResult struct {
	Verified     bool
	Recorded     bool
	Transitioned bool
	Order        *models.Order
}

// Controller owns the order lifecycle: creation, payment verification and
// operator status changes. It is the only writer of status and payment id.
type Controller struct {
	store     OrderStore
	gateway   Gateway
	keySecret string
}

// NewController wires the lifecycle controller. A nil gateway or empty
// secret disables payments; operations then fail with KindConfiguration.
func NewController(store OrderStore, gateway Gateway, keySecret string) *Controller {
	return &Controller{store: store, gateway: gateway, keySecret: keySecret}
}

// CreateOrder opens a remote order with the gateway and records a local
// pending_payment order that references it.
func (c *Controller) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if c.gateway == nil {
		utils.LogError("Order creation refused: payment gateway not configured")
		return nil, configurationError()
	}

	if req.Currency == "" {
		req.Currency = models.DefaultCurrency
	}
	if err := validateCreateOrder(req); err != nil {
		utils.LogError("Invalid order request for product %q: %v", req.Product, err)
		return nil, validationError(err)
	}

	notes := map[string]string{
		"product": req.Product,
		"name":    req.Buyer.Name,
		"email":   req.Buyer.Email,
		"phone":   req.Buyer.Phone,
	}
	remote, err := c.gateway.CreateOrder(ctx, req.Amount, req.Currency, notes)
	if err != nil {
		utils.LogError("Razorpay order creation failed for product %q: %v", req.Product, err)
		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			return nil, upstreamError(gwErr.Description, err)
		}
		return nil, upstreamError("", err)
	}
	utils.LogInfo("Created Razorpay order %s for %d %s", remote.ID, remote.Amount, remote.Currency)

	order := &models.Order{
		Product:         req.Product,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Name:            req.Buyer.Name,
		Email:           req.Buyer.Email,
		Phone:           req.Buyer.Phone,
		Status:          models.OrderStatusPendingPayment,
		RazorpayOrderID: remote.ID,
	}
	if err := c.store.Create(ctx, order); err != nil {
		// the remote order exists but has no local record
		utils.LogError("Failed to record order for Razorpay order %s: %v", remote.ID, err)
		return nil, newError(KindInternal, "Failed to record order", err)
	}
	utils.LogInfo("Recorded order %d for Razorpay order %s", order.ID, remote.ID)

	amount, currency := remote.Amount, remote.Currency
	if amount == 0 {
		amount = req.Amount
	}
	if currency == "" {
		currency = req.Currency
	}
	return &CreateOrderResult{
		OrderID:  remote.ID,
		Amount:   amount,
		Currency: currency,
		KeyID:    c.gateway.KeyID(),
	}, nil
}

func validateCreateOrder(req CreateOrderRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be a positive integer in minor units")
	}
	if err := utils.ValidateCurrency(req.Currency); err != nil {
		return err
	}
	if err := utils.ValidateStringLength(req.Product, 2, 120); err != nil {
		return fmt.Errorf("product %v", err)
	}
	if err := utils.ValidateStringLength(req.Buyer.Name, 2, 120); err != nil {
		return fmt.Errorf("name %v", err)
	}
	if ok, msg := utils.ValidateEmail(req.Buyer.Email); !ok {
		return errors.New(msg)
	}
	if ok, msg := utils.ValidatePhone(req.Buyer.Phone); !ok {
		return errors.New(msg)
	}
	return nil
}

// VerifyPayment checks the completion signature and, when authentic, moves the
// matching order from pending_payment to paid. Repeating a successful call
// with the same ids succeeds without further changes.
func (c *Controller) VerifyPayment(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.PaymentID) == "" {
		return nil, validationError(errors.New("orderId and paymentId are required"))
	}
	if c.keySecret == "" {
		utils.LogError("Verification refused for Razorpay order %s: key secret not configured", req.OrderID)
		return nil, configurationError()
	}

	if !VerifySignature(c.keySecret, req.OrderID, req.PaymentID, req.Signature) {
		utils.LogError("Payment verification failed - Razorpay order: %s, Payment: %s", req.OrderID, req.PaymentID)
		return nil, newError(KindInvalidSignature, "Invalid signature", ErrInvalidSignature)
	}
	utils.LogInfo("Payment signature verified for Razorpay order %s", req.OrderID)

	updated, err := c.store.MarkPaid(ctx, req.OrderID, req.PaymentID)
	if err != nil {
		utils.LogError("Failed to mark Razorpay order %s paid: %v", req.OrderID, err)
		return nil, newError(KindInternal, "Verification error", err)
	}

	order, err := c.store.FindByRazorpayOrderID(ctx, req.OrderID)
	if errors.Is(err, ErrOrderNotFound) {
		utils.LogWarn("Verified payment %s has no local order for Razorpay order %s", req.PaymentID, req.OrderID)
		return &VerifyResult{Verified: true}, nil
	}
	if err != nil {
		utils.LogError("Failed to load Razorpay order %s: %v", req.OrderID, err)
		return nil, newError(KindInternal, "Verification error", err)
	}

	if updated {
		utils.LogInfo("Order %d marked paid with payment %s", order.ID, req.PaymentID)
		return &VerifyResult{Verified: true, Recorded: true, Transitioned: true, Order: order}, nil
	}

	if order.RazorpayPaymentID == req.PaymentID {
		utils.LogInfo("Order %d already recorded payment %s", order.ID, req.PaymentID)
		return &VerifyResult{Verified: true, Recorded: true, Order: order}, nil
	}

	utils.LogError("Authentic payment %s for order %d not recorded: status %s, recorded payment %q",
		req.PaymentID, order.ID, order.Status, order.RazorpayPaymentID)
	return nil, newError(KindConflict, "Order is no longer awaiting payment", ErrPaymentConflict)
}

// GetOrder loads a single order for the dashboard
func (c *Controller) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := c.store.FindByID(ctx, id)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, newError(KindNotFound, "Not found", err)
	}
	if err != nil {
		return nil, newError(KindInternal, "Failed to load order", err)
	}
	return order, nil
}

// ListOrders returns orders newest first together with the unpaginated total
func (c *Controller) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, validationError(fmt.Errorf("unknown status %q", filter.Status))
	}
	orders, total, err := c.store.List(ctx, filter)
	if err != nil {
		return nil, 0, newError(KindInternal, "Failed to list orders", err)
	}
	return orders, total, nil
}

// UpdateOrder applies an operator change. Status may only move forward and
// never to paid, which is reserved for verified payments.
func (c *Controller) UpdateOrder(ctx context.Context, id uint, patch OrderPatch) (*models.Order, error) {
	if patch.Notes != nil && len(*patch.Notes) > 2000 {
		return nil, validationError(errors.New("notes must not exceed 2000 characters"))
	}

	order, err := c.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		next := *patch.Status
		if !next.IsValid() {
			return nil, validationError(fmt.Errorf("unknown status %q", next))
		}
		if next == order.Status {
			patch.Status = nil
		} else if next == models.OrderStatusPaid || !order.Status.CanTransitionTo(next) {
			utils.LogError("Rejected status change for order %d: %s -> %s", order.ID, order.Status, next)
			return nil, newError(KindConflict,
				fmt.Sprintf("Cannot change status from %s to %s", order.Status, next), ErrInvalidTransition)
		}
	}
	if patch.Status == nil && patch.Notes == nil {
		return order, nil
	}

	updated, err := c.store.Update(ctx, order.ID, order.Status, patch)
	if err != nil {
		utils.LogError("Failed to update order %d: %v", order.ID, err)
		return nil, newError(KindInternal, "Failed to update order", err)
	}
	if !updated {
		return nil, newError(KindConflict, "Order was modified, please retry", ErrConcurrentUpdate)
	}
	if patch.Status != nil {
		utils.LogInfo("Order %d status changed: %s -> %s", order.ID, order.Status, *patch.Status)
	}

	return c.GetOrder(ctx, order.ID)
}
