package utils

import (
	"fmt"
	"html"

	"github.com/Govind-619/StudioSite/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional email over SMTP
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil when no SMTP host is configured
func NewMailer(cfg EmailConfig) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// SendPaymentConfirmation emails the buyer a receipt for a verified payment
func (m *Mailer) SendPaymentConfirmation(order *models.Order) error {
	if m == nil {
		LogDebug("SMTP not configured, skipping confirmation for order %d", order.ID)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Payment received for %s", order.Product))
	msg.SetBody("text/html", PaymentConfirmationBody(order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	LogInfo("Payment confirmation sent for order %d", order.ID)
	return nil
}

// PaymentConfirmationBody renders the HTML body of the receipt email
func PaymentConfirmationBody(order *models.Order) string {
	return fmt.Sprintf(`
		<h2>Thank you, %s!</h2>
		<p>We have received your payment for <strong>%s</strong>.</p>
		<table>
			<tr><td>Amount</td><td>%s</td></tr>
			<tr><td>Order reference</td><td>%s</td></tr>
			<tr><td>Payment reference</td><td>%s</td></tr>
		</table>
		<p>Our team will get in touch shortly to get started.</p>
	`,
		html.EscapeString(order.Name),
		html.EscapeString(order.Product),
		FormatAmount(order.Amount, order.Currency),
		html.EscapeString(order.RazorpayOrderID),
		html.EscapeString(order.RazorpayPaymentID),
	)
}

// FormatAmount renders minor units as a major-unit amount, e.g. "INR 1999.00"
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, minor/100, minor%100)
}
