package commands

import (
	"context"
	"log/slog"
	"strings"

	application "brandlink/contexts/engagement/notification-service/application"
	domainerrors "brandlink/contexts/engagement/notification-service/domain/errors"
	"brandlink/contexts/engagement/notification-service/ports"
)

type MarkAllReadUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute flips every unread entry in the receiver's feed and reports how
// many it touched. An empty feed is not an error.
func (uc MarkAllReadUseCase) Execute(ctx context.Context, receiverID string) (int, error) {
	receiverID = strings.TrimSpace(receiverID)
	if receiverID == "" {
		return 0, domainerrors.ErrInvalidInput
	}
	marked, err := uc.Repository.MarkAllReadByReceiver(ctx, receiverID, uc.Clock.Now().UTC())
	if err != nil {
		return 0, err
	}
	application.ResolveLogger(uc.Logger).Info("notifications marked read",
		"event", "notifications_marked_read",
		"module", "engagement/notification-service",
		"layer", "application",
		"receiver_id", receiverID,
		"marked", marked,
	)
	return marked, nil
}

type MarkAdminReadUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc MarkAdminReadUseCase) Execute(ctx context.Context, notificationID string) error {
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return domainerrors.ErrInvalidInput
	}
	return uc.Repository.MarkAdminRead(ctx, notificationID)
}
