package ports

import (
	"context"
	"time"

	"brandlink/contexts/engagement/notification-service/domain/entities"
)

type Repository interface {
	CreateNotification(ctx context.Context, notification entities.Notification) error
	ListByReceiver(ctx context.Context, receiverID string) ([]entities.Notification, error)
	CountUnreadByReceiver(ctx context.Context, receiverID string) (int, error)
	MarkAllReadByReceiver(ctx context.Context, receiverID string, readAt time.Time) (int, error)
	ListAdminFeed(ctx context.Context) ([]entities.Notification, error)
	MarkAdminRead(ctx context.Context, notificationID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
