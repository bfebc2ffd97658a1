package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"seazone/server/internal/models"
)

// Sender delivers a single notification message.
type Sender interface {
	SendMessage(message string) error
}

// Config holds the Telegram credentials for outbound notifications.
type Config struct {
	BotToken string
	ChatID   string
}

// Enabled reports whether both credentials are present.
func (c Config) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	logger *logrus.Logger
	client *http.Client
	config Config
}

func NewTelegram(config Config, logger *logrus.Logger) *Telegram {
	return &Telegram{
		logger: logger,
		config: config,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendMessage posts an HTML-formatted message to the configured chat.
func (t *Telegram) SendMessage(message string) error {
	if t.config.BotToken == "" {
		return errors.New("telegram bot token is not configured")
	}
	if t.config.ChatID == "" {
		return errors.New("telegram chat ID is not configured")
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    t.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the chat")
		default:
			return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// ConfirmationMessage formats the admission confirmation for a freshly
// created reservation.
func ConfirmationMessage(r *models.Reservation) string {
	nights := r.StartDate.NightsUntil(r.EndDate)
	return fmt.Sprintf(
		"<b>New Reservation Confirmed!</b>\n\n"+
			"🏠 Property #%d\n"+
			"👤 %s (%s)\n"+
			"📅 %s → %s (%d nights)\n"+
			"🛏 %d guests\n"+
			"💰 %s total",
		r.PropertyID,
		r.ClientName,
		r.ClientEmail,
		r.StartDate,
		r.EndDate,
		nights,
		r.GuestQuantity,
		r.TotalValue.StringFixed(2),
	)
}
