package payments

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Govind-619/StudioSite/models"
)

type memoryStore struct {
	mu        sync.Mutex
	nextID    uint
	orders    map[uint]*models.Order
	createErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: make(map[uint]*models.Order)}
}

func (s *memoryStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, o := range s.orders {
		if o.RazorpayOrderID == order.RazorpayOrderID {
			return errors.New("duplicate razorpay_order_id")
		}
	}
	s.nextID++
	order.ID = s.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	s.orders[order.ID] = &stored
	return nil
}

func (s *memoryStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memoryStore) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.RazorpayOrderID == razorpayOrderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *memoryStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if filter.Status == "" || o.Status == filter.Status {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = nil
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (s *memoryStore) MarkPaid(ctx context.Context, razorpayOrderID, paymentID string) (bool, error) {
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

func (s *memoryStore) Update(ctx context.Context, id uint, expected models.OrderStatus, patch OrderPatch) (bool, error) {
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

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type fakeGateway struct {
	mu     sync.Mutex
	calls  int
	nextID int
	err    error
	notes  map[string]string
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (*RemoteOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.notes = notes
	if g.err != nil {
		return nil, g.err
	}
	g.nextID++
	return &RemoteOrder{
		ID:       "order_test" + string(rune('A'+g.nextID-1)),
		Amount:   amount,
		Currency: currency,
	}, nil
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
