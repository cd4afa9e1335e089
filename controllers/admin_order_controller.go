package controllers

import (
	"strconv"
	"strings"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/payments"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// AdminOrderController serves the dashboard order screens
type AdminOrderController struct {
	lifecycle *payments.Controller
}

func NewAdminOrderController(lifecycle *payments.Controller) *AdminOrderController {
	return &AdminOrderController{lifecycle: lifecycle}
}

// UpdateOrderRequest is a partial operator change; omitted fields are kept
type UpdateOrderRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// ListOrders returns orders newest first, optionally filtered by ?status=
func (ac *AdminOrderController) ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	pagination := utils.NewPagination(c)
	status := models.OrderStatus(strings.TrimSpace(c.Query("status")))

	orders, total, err := ac.lifecycle.ListOrders(c.Request.Context(), payments.OrderFilter{
		Status: status,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	pagination.SetTotal(total)

	utils.LogDebug("Listed %d of %d orders (status=%q)", len(orders), total, status)
	utils.SendPaginatedResponse(c, "Orders retrieved successfully", orders, pagination)
}

// GetOrder returns a single order
func (ac *AdminOrderController) GetOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := ac.lifecycle.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	utils.Success(c, "Order retrieved successfully", order)
}

// UpdateOrder changes the status and/or notes of an order
func (ac *AdminOrderController) UpdateOrder(c *gin.Context) {
	utils.LogInfo("UpdateOrder called")

	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order update request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidInput, nil)
		return
	}

	var patch payments.OrderPatch
	if req.Status != nil {
		status, ok := models.ParseOrderStatus(strings.TrimSpace(*req.Status))
		if !ok {
			utils.LogError("Invalid status requested for order %d: %s", id, *req.Status)
			utils.RespondAppError(c, utils.BadRequestError(utils.ErrInvalidInput, nil).
				WithDetails(gin.H{"valid_statuses": models.OrderStatuses()}))
			return
		}
		patch.Status = &status
	}
	patch.Notes = req.Notes

	order, err := ac.lifecycle.UpdateOrder(c.Request.Context(), id, patch)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	utils.LogInfo("Order %d updated, status %s", order.ID, order.Status)
	utils.Success(c, "Order updated successfully", order)
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.LogError("Invalid order ID: %q", c.Param("id"))
		utils.BadRequest(c, "Invalid order ID", nil)
		return 0, false
	}
	return uint(id), true
}
