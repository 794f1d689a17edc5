package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/thenoetrevino/hireboard/internal/models"
)

// SendNotification writes a message to the outbox. Delivery happens
// elsewhere; acceptance only requires a known channel, a template and at
// least one recipient.
func (r *Repository) SendNotification(ctx context.Context, req models.NotificationRequest) error {
	if !req.Channel.Valid() {
		return models.NewAPIError(models.CodeInvalidRequest, "unknown channel %q", req.Channel)
	}
	if req.Template == "" {
		return models.NewAPIError(models.CodeInvalidRequest, "template is required")
	}

	recipients := make([]string, 0, len(req.Recipients))
	for _, to := range req.Recipients {
		if to != "" {
			recipients = append(recipients, to)
		}
	}
	if len(recipients) == 0 {
		return models.NewAPIError(models.CodeDeliveryFailed, "Failed to send notification: no recipients")
	}

	rawRecipients, err := json.Marshal(recipients)
	if err != nil {
		return fmt.Errorf("failed to encode recipients: %w", err)
	}
	payload := req.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return models.NewAPIError(models.CodeInvalidRequest, "payload is not serializable: %v", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, channel, recipients, template, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(req.Channel), string(rawRecipients), req.Template, string(rawPayload), toMillis(r.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to queue notification: %w", err)
	}

	r.logger.Debug("notification queued",
		"notification_id", id,
		"channel", req.Channel,
		"template", req.Template,
		"recipients", len(recipients))
	return nil
}

// ListNotifications returns the outbox, oldest first
func (r *Repository) ListNotifications(ctx context.Context) ([]*models.OutboundNotification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, channel, recipients, template, payload, created_at
		 FROM notifications ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]*models.OutboundNotification, 0)
	for rows.Next() {
		var (
			n                   models.OutboundNotification
			channel             string
			recipients, payload string
			createdAt           int64
		)
		if err := rows.Scan(&n.ID, &channel, &recipients, &n.Template, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Channel = models.NotificationChannel(channel)
		n.CreatedAt = fromMillis(createdAt)
		if err := json.Unmarshal([]byte(recipients), &n.Recipients); err != nil {
			return nil, fmt.Errorf("failed to decode recipients of %s: %w", n.ID, err)
		}
		if err := json.Unmarshal([]byte(payload), &n.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode payload of %s: %w", n.ID, err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
