package utils

import (
	"log"
	"time"

	"edublog/config"

	"github.com/go-resty/resty/v2"
)

// WebhookEvent is the payload POSTed to the configured webhook URL
type WebhookEvent struct {
	Event     string                 `json:"event"`
	UserID    uint                   `json:"user_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NotifyWebhook posts an event to the configured webhook endpoint. Delivery is
// best effort; failures are logged and never bubble up to the request path.
// Callers fire it from a goroutine after their transaction commits.
func NotifyWebhook(event string, userID uint, data map[string]interface{}) {
	if config.AppConfig == nil || config.AppConfig.WebhookURL == "" {
		return
	}

	payload := WebhookEvent{
		Event:     event,
		UserID:    userID,
		Timestamp: time.Now(),
		Data:      data,
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(config.AppConfig.WebhookURL)
	if err != nil {
		log.Printf("Webhook delivery failed for %s: %v", event, err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("Webhook endpoint returned %d for %s", resp.StatusCode(), event)
	}
}
