package controllers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/payments"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportOrders downloads every order, optionally filtered by ?status=, as an Excel sheet
func (ac *AdminOrderController) ExportOrders(c *gin.Context) {
	utils.LogInfo("ExportOrders called")

	status := models.OrderStatus(strings.TrimSpace(c.Query("status")))
	orders, _, err := ac.lifecycle.ListOrders(c.Request.Context(), payments.OrderFilter{Status: status})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteOrdersSheet(&buf, orders); err != nil {
		utils.LogError("Failed to write orders export: %v", err)
		utils.InternalServerError(c, "Failed to generate export", nil)
		return
	}
	utils.LogInfo("Exported %d orders", len(orders))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", time.Now().Format("20060102")))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// WriteOrdersSheet writes orders as a single-sheet workbook
func WriteOrdersSheet(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}

	headers := []string{"Order ID", "Created", "Product", "Amount", "Currency", "Name", "Email", "Phone", "Status", "Razorpay Order", "Razorpay Payment", "Paid At", "Notes"}
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}

	var paidTotal int64
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(order.Product)
		row.AddCell().SetFloat(float64(order.Amount) / 100)
		row.AddCell().SetString(order.Currency)
		row.AddCell().SetString(order.Name)
		row.AddCell().SetString(order.Email)
		row.AddCell().SetString(order.Phone)
		row.AddCell().SetString(string(order.Status))
		row.AddCell().SetString(order.RazorpayOrderID)
		row.AddCell().SetString(order.RazorpayPaymentID)
		paidAt := ""
		if order.PaidAt != nil {
			paidAt = order.PaidAt.Format("2006-01-02 15:04")
		}
		row.AddCell().SetString(paidAt)
		row.AddCell().SetString(order.Notes)
		if order.IsPaid() {
			paidTotal += order.Amount
		}
	}

	sheet.AddRow() // spacing
	summary := sheet.AddRow()
	summary.AddCell().SetString("Total Orders")
	summary.AddCell().SetInt(len(orders))
	summary = sheet.AddRow()
	summary.AddCell().SetString("Paid Amount (minor units)")
	summary.AddCell().SetInt(int(paidTotal))

	return file.Write(w)
}
