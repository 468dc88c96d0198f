package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pobyzaarif/goshortcute"

	"localbookr-server/config"
	"localbookr-server/models"
)

type mailjetPayload struct {
	Messages []mailjetMessage `json:"Messages"`
}

type mailjetAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailjetMessage struct {
	From     mailjetAddress   `json:"From"`
	To       []mailjetAddress `json:"To"`
	Subject  string           `json:"Subject"`
	TextPart string           `json:"TextPart"`
	HTMLPart string           `json:"HTMLPart"`
}

// SendEmail relays a single message through Mailjet. Returns nil without
// sending when Mailjet credentials are not configured.
func SendEmail(toName, toEmail, subject, message string) error {
	cfg := config.AppConfig.Mailjet
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil
	}

	payload := mailjetPayload{
		Messages: []mailjetMessage{{
			From: mailjetAddress{
				Email: cfg.SenderEmail,
				Name:  cfg.SenderName,
			},
			To:       []mailjetAddress{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: message,
			HTMLPart: message,
		}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(http.MethodPost, cfg.BaseURL+"/v3.1/send", strings.NewReader(string(payloadBytes)))
	if err != nil {
		return err
	}

	basicAuth := goshortcute.StringtoBase64Encode(cfg.APIKey + ":" + cfg.APISecret)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+basicAuth)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	return fmt.Errorf("mailer returned status %d: %s", res.StatusCode, string(bodyBytes))
}

// SendAssignmentEmail emails a provider the details of a job they were just
// assigned to. Best-effort: failures are logged, never propagated.
func SendAssignmentEmail(provider *models.User, customer *models.User, booking *models.Booking, serviceName string) {
	if provider == nil || provider.Email == "" {
		return
	}

	subject := fmt.Sprintf("New %s job assigned to you", serviceName)
	customerName := "Customer"
	customerPhone := "-"
	if customer != nil {
		if customer.Name != "" {
			customerName = customer.Name
		}
		if customer.Phone != "" {
			customerPhone = customer.Phone
		}
	}
	message := fmt.Sprintf(
		"You have been assigned a new job.\n\nService: %s\nCustomer: %s\nPhone: %s\nDate: %s\nTime: %s\nLocation: %s\nAmount: %.2f\n\nPlease open the app to view the job details.",
		serviceName, customerName, customerPhone, booking.Date, booking.Time, booking.Address, booking.Amount,
	)

	if err := SendEmail(provider.Name, provider.Email, subject, message); err != nil {
		log.Printf("⚠️ Failed to send assignment email to %s: %v", provider.Email, err)
	}
}
