package event_service

import (
	"fmt"
	"time"

	model "token-registry-service/models"

	"github.com/imroc/req"
	"github.com/tidwall/gjson"
)

// WebhookNotifier POSTs each committed event to a configured endpoint. The
// endpoint acknowledges with {"code":0}; anything else counts as a failure
// and is surfaced to the emit loop for logging.
type WebhookNotifier struct {
	url string
}

// NewWebhookNotifier create a notifier for url
func NewWebhookNotifier(url string) *WebhookNotifier {
	req.SetTimeout(10 * time.Second)
	return &WebhookNotifier{url: url}
}

// Publish deliver one event
func (n *WebhookNotifier) Publish(event *model.EventLog) error {
	header := req.Header{
		"Content-Type": "application/json",
	}

	resp, err := req.Post(n.url, header, req.BodyJSON(event))
	if err != nil {
		return fmt.Errorf("failed to deliver event seq %d: %w", event.Seq, err)
	}
	if resp.Response().StatusCode != 200 {
		return fmt.Errorf("webhook returned status %d for event seq %d", resp.Response().StatusCode, event.Seq)
	}

	if code := gjson.Get(resp.String(), "code"); code.Exists() && code.Int() != 0 {
		return fmt.Errorf("webhook rejected event seq %d: code %d", event.Seq, code.Int())
	}
	return nil
}
