package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice renders a PDF receipt for a paid order
func (ac *AdminOrderController) DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := ac.lifecycle.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	if !order.IsPaid() {
		utils.LogError("Invoice requested for unpaid order %d", order.ID)
		utils.Conflict(c, "Invoice is only available for paid orders", nil)
		return
	}

	pdfBytes, err := RenderInvoice(order)
	if err != nil {
		utils.LogError("Failed to render invoice for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}
	utils.LogInfo("PDF invoice generated for order %d", order.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// RenderInvoice lays out the receipt for order
func RenderInvoice(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, fmt.Sprintf("Order ID: %d", order.ID))
	pdf.Cell(80, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(8)
	if order.PaidAt != nil {
		pdf.Cell(60, 8, "Paid On: "+order.PaidAt.Format("2006-01-02 15:04"))
	}
	pdf.Cell(80, 8, "Status: "+string(order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, tr(order.Name))
	pdf.Ln(6)
	pdf.Cell(100, 8, order.Email)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+order.Phone)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(110, 8, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(110, 8, tr(order.Product), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, utils.FormatAmount(order.Amount, order.Currency), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(100, 6, "Razorpay order: "+order.RazorpayOrderID)
	pdf.Ln(5)
	pdf.Cell(100, 6, "Razorpay payment: "+order.RazorpayPaymentID)
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for your business!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
