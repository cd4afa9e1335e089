package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// AdminContextKey is where the authenticated admin is stored on the gin context
const AdminContextKey = "admin"

// AdminLookup loads the admin named by a token
type AdminLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Admin, error)
}

// AdminAuthMiddleware requires a valid admin bearer token
func AdminAuthMiddleware(jwtSecret string, admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			rejectToken(c, errors.New("missing Authorization header"))
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			rejectToken(c, errors.New("invalid Bearer token format"))
			return
		}

		if jwtSecret == "" {
			utils.LogError("JWT secret not configured")
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken(jwtSecret, tokenString)
		if err != nil {
			rejectToken(c, err)
			return
		}

		admin, err := admins.FindByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			rejectToken(c, fmt.Errorf("admin %d: %w", claims.AdminID, err))
			return
		}

		if !admin.IsActive {
			utils.LogError("Inactive admin attempted access: %d", admin.ID)
			utils.Forbidden(c, "Admin account is inactive")
			c.Abort()
			return
		}

		c.Set(AdminContextKey, admin)
		utils.LogDebug("Admin %d authenticated", admin.ID)
		c.Next()
	}
}

func rejectToken(c *gin.Context, reason error) {
	appErr := utils.UnauthorizedError(utils.ErrUnauthorized, reason)
	utils.LogError("Admin request rejected: %v", appErr)
	utils.RespondAppError(c, appErr)
	c.Abort()
}

// CurrentAdmin returns the admin set by AdminAuthMiddleware
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(AdminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}
