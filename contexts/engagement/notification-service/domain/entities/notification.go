package entities

import (
	"strings"
	"time"
)

type NotificationType string

const (
	// TypeUser targets a single receiver's feed.
	TypeUser NotificationType = "USER"
	// TypeAdmin lands on the shared admin feed instead of a user inbox.
	TypeAdmin NotificationType = "ADMIN"
)

// Notification is one entry in a feed. Admin entries carry no receiver;
// user entries always do.
type Notification struct {
	NotificationID string
	ReceiverID     string
	Text           string
	Name           string
	Image          string
	Type           NotificationType
	Read           bool
	CreatedAt      time.Time
}

func (n Notification) ValidateBasics() bool {
	if strings.TrimSpace(n.NotificationID) == "" || strings.TrimSpace(n.Text) == "" {
		return false
	}
	switch n.Type {
	case TypeUser:
		return strings.TrimSpace(n.ReceiverID) != ""
	case TypeAdmin:
		return true
	default:
		return false
	}
}
