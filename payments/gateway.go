package payments

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Govind-619/StudioSite/utils"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// RemoteOrder is the provider's view of a created payment order
type RemoteOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway creates remote payment orders with the payment provider
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (*RemoteOrder, error)
	// KeyID is the public key the checkout widget is opened with
	KeyID() string
}

// GatewayError carries the provider's own explanation of a failed call
type GatewayError struct {
	Description string
	Err         error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Description, e.Err)
	}
	return e.Description
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// orderCreator is the subset of the Razorpay SDK used by RazorpayGateway
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway talks to Razorpay through the official SDK
type RazorpayGateway struct {
	keyID  string
	orders orderCreator
}

// NewRazorpayGateway returns a gateway for the given credentials, or nil when
// either credential is missing so callers can treat payments as disabled.
func NewRazorpayGateway(keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	if keyID == "" || keySecret == "" {
		return nil
	}
	client := razorpay.NewClient(keyID, keySecret)
	seconds := int16(timeout / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	// the SDK keeps its HTTP client in package state; one gateway per process
	razorpay.Request.SetTimeout(seconds)
	return &RazorpayGateway{keyID: keyID, orders: client.Order}
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (*RemoteOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GatewayError{Description: "Payment request cancelled", Err: err}
	}

	noteData := make(map[string]interface{}, len(notes))
	for k, v := range notes {
		noteData[k] = v
	}
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		"payment_capture": 1,
		"notes":           noteData,
	}
	utils.LogDebug("Creating Razorpay order - Amount: %d %s, Receipt: %v", amount, currency, data["receipt"])

	resp, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, &GatewayError{Description: describeGatewayError(err), Err: err}
	}
	return parseRemoteOrder(resp)
}

func describeGatewayError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Payment provider timed out"
	}
	// SDK errors carry the provider's error description as their message
	return strings.TrimSpace(err.Error())
}

func parseRemoteOrder(resp map[string]interface{}) (*RemoteOrder, error) {
	id, _ := resp["id"].(string)
	if id == "" {
		return nil, &GatewayError{Description: ErrPaymentUnavailable.Error(), Err: errors.New("response missing order id")}
	}
	order := &RemoteOrder{ID: id}
	switch v := resp["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	order.Currency, _ = resp["currency"].(string)
	return order, nil
}
