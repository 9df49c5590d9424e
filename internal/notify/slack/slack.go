// Package slack sends high-urgency triage notifications to Slack via
// incoming webhooks. Payloads carry only anonymized audit fields, never
// the raw patient message.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carelabs/triago/internal/triage"
)

const (
	maxSymptomTags = 10
	httpTimeout    = 10 * time.Second
)

// Notifier sends triage audit events to a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

// New creates a new Slack notifier. If webhookURL is empty, Send is a no-op.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: httpTimeout},
	}
}

// Send posts an audit entry to the configured Slack webhook.
// If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) Send(ctx context.Context, entry *triage.AuditRecord) error {
	if n.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(buildMessage(entry))
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func buildMessage(entry *triage.AuditRecord) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("\U0001f534 High-urgency triage: %s", entry.Department),
				},
			},
			{"type": "divider"},
			{
				"type": "section",
				"fields": []map[string]any{
					{"type": "mrkdwn", "text": fmt.Sprintf("*Urgency:* %s", entry.Urgency)},
					{"type": "mrkdwn", "text": fmt.Sprintf("*Department:* %s", entry.Department)},
					{"type": "mrkdwn", "text": fmt.Sprintf("*Symptom tags:* %s", symptomLine(entry.Symptoms))},
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{
						"type": "mrkdwn",
						"text": fmt.Sprintf("triago • audit %s • %s", entry.ID, entry.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")),
					},
				},
			},
		},
	}
}

func symptomLine(tags []string) string {
	if len(tags) == 0 {
		return "_none extracted_"
	}
	if len(tags) > maxSymptomTags {
		tags = append(tags[:maxSymptomTags:maxSymptomTags], "…")
	}
	return strings.Join(tags, ", ")
}
