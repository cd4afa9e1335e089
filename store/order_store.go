package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/payments"
	"gorm.io/gorm"
)

// OrderStore is the Postgres-backed order repository
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an OrderStore on top of an open gorm connection
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payments.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &order, nil
}

func (s *OrderStore) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("razorpay_order_id = ?", razorpayOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payments.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find razorpay order %s: %w", razorpayOrderID, err)
	}
	return &order, nil
}

func (s *OrderStore) List(ctx context.Context, filter payments.OrderFilter) ([]models.Order, int64, error) {
	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Order{})
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var orders []models.Order
	q := scoped().Order("created_at DESC").Order("id DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// MarkPaid is a single conditional UPDATE so concurrent verifications of the
// same order make at most one effective transition.
func (s *OrderStore) MarkPaid(ctx context.Context, razorpayOrderID, paymentID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("razorpay_order_id = ? AND status = ?", razorpayOrderID, string(models.OrderStatusPendingPayment)).
		Updates(map[string]interface{}{
			"status":              string(models.OrderStatusPaid),
			"razorpay_payment_id": paymentID,
			"paid_at":             time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark razorpay order %s paid: %w", razorpayOrderID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *OrderStore) Update(ctx context.Context, id uint, expected models.OrderStatus, patch payments.OrderPatch) (bool, error) {
	changes := map[string]interface{}{}
	if patch.Status != nil {
		changes["status"] = string(*patch.Status)
	}
	if patch.Notes != nil {
		changes["notes"] = *patch.Notes
	}
	if len(changes) == 0 {
		return true, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(changes)
	if res.Error != nil {
		return false, fmt.Errorf("update order %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}
