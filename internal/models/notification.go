package models

import "time"

// NotificationChannel is the delivery medium for an outbound message
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// Valid reports whether the channel is supported
func (c NotificationChannel) Valid() bool {
	return c == ChannelEmail || c == ChannelSMS
}

// NotificationRequest is an outbound templated message
type NotificationRequest struct {
	Channel    NotificationChannel
	Recipients []string
	Template   string
	Payload    map[string]any
}

// OutboundNotification is a notification accepted into the outbox
type OutboundNotification struct {
	ID         string
	Channel    NotificationChannel
	Recipients []string
	Template   string
	Payload    map[string]any
	CreatedAt  time.Time
}
