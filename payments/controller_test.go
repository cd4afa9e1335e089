package payments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Govind-619/StudioSite/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key"

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Amount:   199900,
		Currency: "INR",
		Product:  "Resume",
		Buyer: Buyer{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "+919876543210",
		},
	}
}

func seedPending(t *testing.T, store *memoryStore, razorpayOrderID string) *models.Order {
	t.Helper()
	order := &models.Order{
		Product:         "Resume",
		Amount:          199900,
		Currency:        "INR",
		Name:            "Asha Rao",
		Email:           "asha@example.com",
		Phone:           "+919876543210",
		Status:          models.OrderStatusPendingPayment,
		RazorpayOrderID: razorpayOrderID,
	}
	require.NoError(t, store.Create(context.Background(), order))
	return order
}

func TestCreateOrder_Success(t *testing.T) {
	store := newMemoryStore()
	gw := &fakeGateway{}
	ctrl := NewController(store, gw, testSecret)

	res, err := ctrl.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, int64(199900), res.Amount)
	assert.Equal(t, "INR", res.Currency)
	assert.Equal(t, "rzp_test_key", res.KeyID)
	assert.NotContains(t, res.KeyID, testSecret)

	order, err := store.FindByRazorpayOrderID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, "Resume", order.Product)
	assert.Empty(t, order.RazorpayPaymentID)

	assert.Equal(t, map[string]string{
		"product": "Resume",
		"name":    "Asha Rao",
		"email":   "asha@example.com",
		"phone":   "+919876543210",
	}, gw.notes)
}

func TestCreateOrder_DefaultsCurrency(t *testing.T) {
	store := newMemoryStore()
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	req := validRequest()
	req.Currency = ""
	res, err := ctrl.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "INR", res.Currency)
}

func TestCreateOrder_RejectsInvalidInputBeforeGatewayCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"zero amount", func(r *CreateOrderRequest) { r.Amount = 0 }},
		{"negative amount", func(r *CreateOrderRequest) { r.Amount = -100 }},
		{"bad currency", func(r *CreateOrderRequest) { r.Currency = "rupees" }},
		{"short product", func(r *CreateOrderRequest) { r.Product = "R" }},
		{"missing name", func(r *CreateOrderRequest) { r.Buyer.Name = "" }},
		{"bad email", func(r *CreateOrderRequest) { r.Buyer.Email = "not-an-email" }},
		{"short phone", func(r *CreateOrderRequest) { r.Buyer.Phone = "123" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			gw := &fakeGateway{}
			ctrl := NewController(store, gw, testSecret)

			req := validRequest()
			tt.mutate(&req)
			_, err := ctrl.CreateOrder(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, gw.callCount())
			assert.Equal(t, 0, store.count())
		})
	}
}

func TestCreateOrder_NotConfigured(t *testing.T) {
	store := newMemoryStore()
	ctrl := NewController(store, nil, "")

	_, err := ctrl.CreateOrder(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateOrder_GatewayFailureSurfacesDescription(t *testing.T) {
	store := newMemoryStore()
	gw := &fakeGateway{err: &GatewayError{Description: "The amount must be atleast INR 1.00"}}
	ctrl := NewController(store, gw, testSecret)

	_, err := ctrl.CreateOrder(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "The amount must be atleast INR 1.00", perr.Message)
	assert.Equal(t, 0, store.count())
}

func TestCreateOrder_GatewayFailureWithoutDescription(t *testing.T) {
	store := newMemoryStore()
	gw := &fakeGateway{err: errors.New("boom")}
	ctrl := NewController(store, gw, testSecret)

	_, err := ctrl.CreateOrder(context.Background(), validRequest())
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindUpstream, perr.Kind)
	assert.Equal(t, "payment error", perr.Message)
}

func TestCreateOrder_StoreFailureLeavesNoOrder(t *testing.T) {
	store := newMemoryStore()
	store.createErr = errors.New("connection refused")
	gw := &fakeGateway{}
	ctrl := NewController(store, gw, testSecret)

	_, err := ctrl.CreateOrder(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, 1, gw.callCount())
	assert.Equal(t, 0, store.count())
}

func TestVerifyPayment_ValidSignatureMarksPaid(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	res, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: Sign(testSecret, "order_abc", "pay_123"),
	})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.True(t, res.Recorded)

	order, err := store.FindByRazorpayOrderID(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, "pay_123", order.RazorpayPaymentID)
	assert.NotNil(t, order.PaidAt)
}

func TestVerifyPayment_InvalidSignatureLeavesPending(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: "deadbeef",
	})
	require.Error(t, err)
	assert.Equal(t, KindInvalidSignature, KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	order, err := store.FindByRazorpayOrderID(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.Empty(t, order.RazorpayPaymentID)
}

func TestVerifyPayment_SingleCharacterMutationsFail(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)
	sig := Sign(testSecret, "order_abc", "pay_123")

	mutate := func(s string, i int) string {
		b := []byte(s)
		if b[i] == 'a' {
			b[i] = 'b'
		} else {
			b[i] = 'a'
		}
		return string(b)
	}

	for i := range sig {
		_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", "pay_123", mutate(sig, i)})
		assert.Equal(t, KindInvalidSignature, KindOf(err), "signature index %d", i)
	}
	for i := range "order_abc" {
		_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{mutate("order_abc", i), "pay_123", sig})
		assert.Equal(t, KindInvalidSignature, KindOf(err), "order id index %d", i)
	}
	for i := range "pay_123" {
		_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", mutate("pay_123", i), sig})
		assert.Equal(t, KindInvalidSignature, KindOf(err), "payment id index %d", i)
	}

	order, err := store.FindByRazorpayOrderID(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
}

func TestVerifyPayment_Idempotent(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)
	req := VerifyRequest{"order_abc", "pay_123", Sign(testSecret, "order_abc", "pay_123")}

	first, err := ctrl.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	second, err := ctrl.VerifyPayment(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, first.Recorded)
	assert.True(t, second.Recorded)
	assert.True(t, first.Transitioned)
	assert.False(t, second.Transitioned)
	assert.Equal(t, first.Order.RazorpayPaymentID, second.Order.RazorpayPaymentID)
	assert.Equal(t, models.OrderStatusPaid, second.Order.Status)
}

func TestVerifyPayment_ConcurrentCallsTransitionOnce(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)
	req := VerifyRequest{"order_abc", "pay_123", Sign(testSecret, "order_abc", "pay_123")}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	transitions := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := ctrl.VerifyPayment(context.Background(), req)
			errs <- err
			transitions <- err == nil && res.Transitioned
		}()
	}
	wg.Wait()
	close(errs)
	close(transitions)

	for err := range errs {
		assert.NoError(t, err)
	}
	count := 0
	for moved := range transitions {
		if moved {
			count++
		}
	}
	assert.Equal(t, 1, count)
	order, err := store.FindByRazorpayOrderID(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, "pay_123", order.RazorpayPaymentID)
}

func TestVerifyPayment_DifferentPaymentDoesNotOverwrite(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", "pay_123", Sign(testSecret, "order_abc", "pay_123")})
	require.NoError(t, err)

	_, err = ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", "pay_999", Sign(testSecret, "order_abc", "pay_999")})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, ErrPaymentConflict)

	order, err := store.FindByRazorpayOrderID(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, "pay_123", order.RazorpayPaymentID)
}

func TestVerifyPayment_NeverRegressesStatus(t *testing.T) {
	for _, status := range []models.OrderStatus{models.OrderStatusInProgress, models.OrderStatusDelivered, models.OrderStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			store := newMemoryStore()
			order := seedPending(t, store, "order_abc")
			store.orders[order.ID].Status = status
			ctrl := NewController(store, &fakeGateway{}, testSecret)

			_, _ = ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", "pay_123", Sign(testSecret, "order_abc", "pay_123")})

			got, err := store.FindByID(context.Background(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)
		})
	}
}

func TestVerifyPayment_NoLocalOrderStillVerifies(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_other")
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	res, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{
		OrderID:   "order_missing",
		PaymentID: "pay_123",
		Signature: Sign(testSecret, "order_missing", "pay_123"),
	})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.False(t, res.Recorded)
	assert.Nil(t, res.Order)

	other, err := store.FindByRazorpayOrderID(context.Background(), "order_other")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, other.Status)
	assert.Equal(t, 1, store.count())
}

func TestVerifyPayment_MissingSecretFailsClosed(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_abc")
	ctrl := NewController(store, nil, "")

	_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", "pay_123", Sign("", "order_abc", "pay_123")})
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestVerifyPayment_MissingIDs(t *testing.T) {
	ctrl := NewController(newMemoryStore(), &fakeGateway{}, testSecret)

	_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{OrderID: "", PaymentID: "pay_123", Signature: "x"})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateOrder_ForwardTransitions(t *testing.T) {
	store := newMemoryStore()
	order := seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)
	_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_abc", "pay_123", Sign(testSecret, "order_abc", "pay_123")})
	require.NoError(t, err)

	inProgress := models.OrderStatusInProgress
	got, err := ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, got.Status)

	delivered := models.OrderStatusDelivered
	notes := "handed over"
	got, err = ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &delivered, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)
	assert.Equal(t, "handed over", got.Notes)
	assert.Equal(t, "pay_123", got.RazorpayPaymentID)
}

func TestUpdateOrder_RejectsBackwardAndPaid(t *testing.T) {
	store := newMemoryStore()
	order := seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	paid := models.OrderStatusPaid
	_, err := ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &paid})
	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	delivered := models.OrderStatusDelivered
	_, err = ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &delivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cancelled := models.OrderStatusCancelled
	_, err = ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &cancelled})
	require.NoError(t, err)

	pending := models.OrderStatusPendingPayment
	_, err = ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &pending})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
}

func TestUpdateOrder_NotesOnlyAndValidation(t *testing.T) {
	store := newMemoryStore()
	order := seedPending(t, store, "order_abc")
	ctrl := NewController(store, &fakeGateway{}, testSecret)

	notes := "called buyer"
	got, err := ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "called buyer", got.Notes)
	assert.Equal(t, models.OrderStatusPendingPayment, got.Status)

	bogus := models.OrderStatus("shipped")
	_, err = ctrl.UpdateOrder(context.Background(), order.ID, OrderPatch{Status: &bogus})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ctrl.UpdateOrder(context.Background(), 999, OrderPatch{Notes: &notes})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListOrders(t *testing.T) {
	store := newMemoryStore()
	seedPending(t, store, "order_1")
	seedPending(t, store, "order_2")
	seedPending(t, store, "order_3")
	ctrl := NewController(store, &fakeGateway{}, testSecret)
	_, err := ctrl.VerifyPayment(context.Background(), VerifyRequest{"order_2", "pay_2", Sign(testSecret, "order_2", "pay_2")})
	require.NoError(t, err)

	orders, total, err := ctrl.ListOrders(context.Background(), OrderFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, "order_3", orders[0].RazorpayOrderID)

	orders, total, err = ctrl.ListOrders(context.Background(), OrderFilter{Status: models.OrderStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "order_2", orders[0].RazorpayOrderID)

	_, _, err = ctrl.ListOrders(context.Background(), OrderFilter{Status: "bogus"})
	assert.Equal(t, KindValidation, KindOf(err))
}
