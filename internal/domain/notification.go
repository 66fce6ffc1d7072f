package domain

import "time"

// Notification is a single best-effort message to one recipient. Unread state
// is implicit: acknowledging a notification deletes it.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	CreatedAt time.Time
}
