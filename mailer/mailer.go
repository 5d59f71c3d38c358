package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/blueprint-wear/storefront-api/models"
)

// Mailer sends transactional mail over SMTP. When MAIL_FROM is not set the
// mailer is disabled and sends are logged and skipped, never surfaced as
// errors to callers.
type Mailer struct {
	from     string
	host     string
	port     int
	username string
	password string
}

func NewFromEnv() *Mailer {
	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}
	m := &Mailer{
		from:     os.Getenv("MAIL_FROM"),
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
	}
	if m.from == "" {
		log.Println("⚠️ MAIL_FROM is not configured, order confirmation mail disabled")
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m.from != ""
}

// SendOrderConfirmation mails the shopper after the payment is approved.
func (m *Mailer) SendOrderConfirmation(order models.Order) error {
	if !m.Enabled() {
		log.Printf("Skipping confirmation mail for order #%d (mailer disabled)", order.Number)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order #%d confirmed", order.Number))

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your payment for order <b>#%d</b> was received.</p><p>Total: %d.%02d %s</p>",
		order.CustomerName, order.Number,
		order.TotalCents/100, order.TotalCents%100, order.Currency,
	)
	if order.ShipmentTTN != "" {
		body += fmt.Sprintf("<p>Nova Poshta tracking number: <b>%s</b></p>", order.ShipmentTTN)
	}
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}
