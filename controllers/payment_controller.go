package controllers

import (
	"strings"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/payments"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// PaymentNotifier tells a buyer their payment went through
type PaymentNotifier interface {
	SendPaymentConfirmation(order *models.Order) error
}

// PaymentController serves the public checkout endpoints
type PaymentController struct {
	lifecycle *payments.Controller
	notifier  PaymentNotifier
}

func NewPaymentController(lifecycle *payments.Controller, notifier PaymentNotifier) *PaymentController {
	return &PaymentController{lifecycle: lifecycle, notifier: notifier}
}

// CreatePaymentOrderRequest is the checkout form posted by the site.
// Amount is in minor units; a fractional JSON number fails to bind.
type CreatePaymentOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Product  string `json:"product"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// VerifyPaymentRequest is the Razorpay checkout handler payload
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// CreateOrder opens a Razorpay order for the checkout widget
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var req CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidInput, nil)
		return
	}

	for _, field := range []string{req.Product, req.Name} {
		if ok, msg := utils.ValidateXSS(field); !ok {
			utils.LogError("Rejected order request: %s", msg)
			utils.BadRequest(c, utils.ErrInvalidInput, nil)
			return
		}
	}

	result, err := pc.lifecycle.CreateOrder(c.Request.Context(), payments.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
		Product:  strings.TrimSpace(req.Product),
		Buyer: payments.Buyer{
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
			Phone: strings.TrimSpace(req.Phone),
		},
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	utils.Success(c, "Order created", gin.H{
		"orderId":  result.OrderID,
		"amount":   result.Amount,
		"currency": result.Currency,
		"keyId":    result.KeyID,
	})
}

// VerifyPayment checks the checkout signature and records the payment
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verification request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidInput, nil)
		return
	}

	result, err := pc.lifecycle.VerifyPayment(c.Request.Context(), payments.VerifyRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	if result.Transitioned && pc.notifier != nil {
		order := *result.Order
		go func() {
			if err := pc.notifier.SendPaymentConfirmation(&order); err != nil {
				utils.LogError("Failed to send payment confirmation for order %d: %v", order.ID, err)
			}
		}()
	}

	data := gin.H{"status": "verified", "verified": true, "recorded": result.Recorded}
	if result.Order != nil {
		data["orderStatus"] = result.Order.Status
	}
	utils.Success(c, "Payment verified", data)
}
