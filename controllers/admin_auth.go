package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/store"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// AdminStore is the admin persistence used by login and seeding
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateIfMissing(ctx context.Context, admin *models.Admin) (bool, error)
	TouchLogin(ctx context.Context, id uint, at time.Time) error
}

// AdminController handles dashboard authentication
type AdminController struct {
	admins    AdminStore
	jwtSecret string
}

func NewAdminController(admins AdminStore, jwtSecret string) *AdminController {
	return &AdminController{admins: admins, jwtSecret: jwtSecret}
}

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles admin authentication
func (ac *AdminController) Login(c *gin.Context) {
	utils.LogInfo("AdminLogin called")
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidInput, nil)
		return
	}

	admin, err := ac.admins.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, store.ErrAdminNotFound) {
		utils.LogError("Admin not found for email: %s", req.Email)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if err != nil {
		utils.LogError("Failed to load admin %s: %v", req.Email, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin account attempted login: %s", admin.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Invalid password for admin: %s", admin.Email)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	if err := ac.admins.TouchLogin(c.Request.Context(), admin.ID, time.Now()); err != nil {
		utils.LogError("Failed to update last login for admin: %s: %v", admin.Email, err)
	}

	token, err := utils.GenerateAdminToken(ac.jwtSecret, admin, utils.AdminTokenTTL)
	if err != nil {
		utils.LogError("Failed to sign JWT token for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("Admin login successful: %s", admin.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// EnsureAdmin seeds the dashboard operator from configuration.
// An existing admin with the same email is left untouched.
func EnsureAdmin(ctx context.Context, admins AdminStore, email, password string) error {
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %v", err)
	}

	created, err := admins.CreateIfMissing(ctx, &models.Admin{
		Email:    email,
		Password: hash,
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %v", err)
	}
	if created {
		utils.LogInfo("Created admin %s", email)
	}
	return nil
}
