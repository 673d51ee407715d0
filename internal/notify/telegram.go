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

	"estatehub/server/internal/models"
)

// TelegramNotifier pushes new-lead notifications to a Telegram chat. It is
// inert unless both bot token and chat id are configured.
type TelegramNotifier struct {
	logger   *logrus.Logger
	client   *http.Client
	botToken string
	chatID   string
}

func NewTelegramNotifier(logger *logrus.Logger, botToken, chatID string) *TelegramNotifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &TelegramNotifier{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		botToken: botToken,
		chatID:   chatID,
	}
}

func (n *TelegramNotifier) Enabled() bool {
	return n != nil && n.botToken != "" && n.chatID != ""
}

// NotifyNewLead sends a summary of a freshly captured lead.
func (n *TelegramNotifier) NotifyNewLead(lead *models.Lead) error {
	if !n.Enabled() {
		return nil
	}

	message := fmt.Sprintf(
		"📩 <b>New lead</b>\n\nName: %s\nEmail: %s\nPhone: %s\nSource: %s",
		lead.Name, lead.Email, lead.Phone, lead.Source,
	)
	if lead.PropertyID != nil {
		message += fmt.Sprintf("\nProperty: #%d", *lead.PropertyID)
	}
	if lead.Message != "" {
		message += fmt.Sprintf("\n\n%s", lead.Message)
	}

	return n.sendMessage(message)
}

func (n *TelegramNotifier) sendMessage(message string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	payload := map[string]interface{}{
		"chat_id":    n.chatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	resp, err := n.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
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
			return errors.New("bot was blocked by the user or chat")
		default:
			return fmt.Errorf("telegram API error (%d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}
