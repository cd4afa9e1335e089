package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/StudioSite/models"
	"gorm.io/gorm"
)

// ErrAdminNotFound is returned when no admin matches the lookup
var ErrAdminNotFound = errors.New("admin not found")

// AdminStore persists dashboard operators
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// FindByEmail looks up an admin; emails are stored lower-case
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

func (s *AdminStore) FindByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin %d: %w", id, err)
	}
	return &admin, nil
}

// CreateIfMissing inserts admin unless one with the same email exists.
// It reports whether a row was created.
func (s *AdminStore) CreateIfMissing(ctx context.Context, admin *models.Admin) (bool, error) {
	admin.Email = strings.ToLower(admin.Email)
	_, err := s.FindByEmail(ctx, admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return false, err
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func (s *AdminStore) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("last_login", at).Error
}
