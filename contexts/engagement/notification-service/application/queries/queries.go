package queries

import (
	"context"
	"log/slog"
	"strings"

	"brandlink/contexts/engagement/notification-service/domain/entities"
	domainerrors "brandlink/contexts/engagement/notification-service/domain/errors"
	"brandlink/contexts/engagement/notification-service/ports"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Feed bundles a receiver's notifications with the unread count, so the
// inbox badge and the list come from one read.
type Feed struct {
	Notifications []entities.Notification
	Unread        int
}

func (uc QueryUseCase) FeedForReceiver(ctx context.Context, receiverID string) (Feed, error) {
	receiverID = strings.TrimSpace(receiverID)
	if receiverID == "" {
		return Feed{}, domainerrors.ErrInvalidInput
	}
	notifications, err := uc.Repository.ListByReceiver(ctx, receiverID)
	if err != nil {
		return Feed{}, err
	}
	unread, err := uc.Repository.CountUnreadByReceiver(ctx, receiverID)
	if err != nil {
		return Feed{}, err
	}
	return Feed{Notifications: notifications, Unread: unread}, nil
}

func (uc QueryUseCase) AdminFeed(ctx context.Context) ([]entities.Notification, error) {
	return uc.Repository.ListAdminFeed(ctx)
}
