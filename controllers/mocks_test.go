package controllers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/payments"
	"github.com/Govind-619/StudioSite/store"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

const (
	testKeySecret = "rzp_secret_for_tests"
	testJWTSecret = "jwt_secret_for_tests"
)

type orderStore struct {
	mu      sync.Mutex
	nextID  uint
	orders  map[uint]*models.Order
	listErr error
}

func newOrderStore() *orderStore {
	return &orderStore{orders: make(map[uint]*models.Order)}
}

func (s *orderStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	order.ID = s.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	s.orders[order.ID] = &stored
	return nil
}

func (s *orderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, payments.ErrOrderNotFound
}

func (s *orderStore) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.RazorpayOrderID == razorpayOrderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, payments.ErrOrderNotFound
}

func (s *orderStore) List(ctx context.Context, filter payments.OrderFilter) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	var out []models.Order
	for _, o := range s.orders {
		if filter.Status == "" || o.Status == filter.Status {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if filter.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (s *orderStore) MarkPaid(ctx context.Context, razorpayOrderID, paymentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.RazorpayOrderID == razorpayOrderID && o.Status == models.OrderStatusPendingPayment {
			now := time.Now()
			o.Status = models.OrderStatusPaid
			o.RazorpayPaymentID = paymentID
			o.PaidAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (s *orderStore) Update(ctx context.Context, id uint, expected models.OrderStatus, patch payments.OrderPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != expected {
		return false, nil
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.Notes != nil {
		o.Notes = *patch.Notes
	}
	return true, nil
}

func (s *orderStore) seed(razorpayOrderID string, status models.OrderStatus) *models.Order {
	order := &models.Order{
		Product:         "Portfolio Website",
		Amount:          499900,
		Currency:        "INR",
		Name:            "Asha Rao",
		Email:           "asha@example.com",
		Phone:           "+91 98765 43210",
		Status:          status,
		RazorpayOrderID: razorpayOrderID,
	}
	if status != models.OrderStatusPendingPayment {
		now := time.Now()
		order.RazorpayPaymentID = "pay_" + strings.TrimPrefix(razorpayOrderID, "order_")
		order.PaidAt = &now
	}
	_ = s.Create(context.Background(), order)
	return order
}

type gateway struct {
	calls int
	err   error
}

func (g *gateway) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (*payments.RemoteOrder, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &payments.RemoteOrder{ID: fmt.Sprintf("order_http%d", g.calls), Amount: amount, Currency: currency}, nil
}

func (g *gateway) KeyID() string {
	return "rzp_test_public"
}

type adminStore struct {
	mu      sync.Mutex
	admins  map[string]*models.Admin
	touched int
}

func newAdminStore() *adminStore {
	return &adminStore{admins: make(map[string]*models.Admin)}
}

func (s *adminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.admins[strings.ToLower(email)]; ok {
		return a, nil
	}
	return nil, store.ErrAdminNotFound
}

func (s *adminStore) CreateIfMissing(ctx context.Context, admin *models.Admin) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(admin.Email)
	if _, ok := s.admins[email]; ok {
		return false, nil
	}
	admin.Email = email
	admin.ID = uint(len(s.admins) + 1)
	s.admins[email] = admin
	return true, nil
}

func (s *adminStore) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched++
	return nil
}

type failingAdminStore struct{ adminStore }

func (s *failingAdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return nil, errors.New("connection refused")
}

type recordingNotifier struct {
	sent chan *models.Order
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan *models.Order, 8)}
}

func (n *recordingNotifier) SendPaymentConfirmation(order *models.Order) error {
	n.sent <- order
	return nil
}

// paymentRouter mounts the checkout handlers without rate limiting or auth
func paymentRouter(pc *PaymentController) *gin.Engine {
	r := utils.NewTestRouter()
	r.POST("/api/payments/order", pc.CreateOrder)
	r.POST("/api/payments/verify", pc.VerifyPayment)
	return r
}

func adminOrderRouter(ac *AdminOrderController) *gin.Engine {
	r := utils.NewTestRouter()
	r.GET("/api/admin/orders", ac.ListOrders)
	r.GET("/api/admin/orders/export", ac.ExportOrders)
	r.GET("/api/admin/orders/:id", ac.GetOrder)
	r.GET("/api/admin/orders/:id/invoice", ac.DownloadInvoice)
	r.PATCH("/api/admin/orders/:id", ac.UpdateOrder)
	return r
}
