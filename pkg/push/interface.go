package push

import "context"

type PushProvider interface {
	Name() string
	SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error)
}

// NotificationRequest targets a device token or, when Token is empty, a topic.
type NotificationRequest struct {
	Token    string            `json:"token,omitempty"`
	Topic    string            `json:"topic,omitempty"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Priority string            `json:"priority,omitempty"` // normal, high
}

type NotificationResponse struct {
	MessageID string `json:"message_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
