package dto

import "time"

// NotificationResponse describes a pending notification. Recipient is only
// attached on the admin diagnostic feed.
type NotificationResponse struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	Recipient *UserIdentity `json:"recipient,omitempty"`
}

// AcknowledgeResponse confirms a destructive acknowledgment.
type AcknowledgeResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
