package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "brandlink/contexts/engagement/notification-service/application"
	"brandlink/contexts/engagement/notification-service/domain/entities"
	domainerrors "brandlink/contexts/engagement/notification-service/domain/errors"
	"brandlink/contexts/engagement/notification-service/ports"
)

type SendCommand struct {
	Text             string
	ReceiverID       string
	Name             string
	Image            string
	BroadcastToAdmin bool
}

// SendUseCase records a notification for the receiver's feed. When the
// event is flagged for the admin feed a second entry is written there, so
// the two feeds never share read state.
type SendUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SendUseCase) Execute(ctx context.Context, cmd SendCommand) (entities.Notification, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	notification, err := uc.buildNotification(ctx, cmd, entities.TypeUser, now)
	if err != nil {
		return entities.Notification{}, err
	}
	if err := uc.Repository.CreateNotification(ctx, notification); err != nil {
		return entities.Notification{}, err
	}

	if cmd.BroadcastToAdmin {
		adminCopy, err := uc.buildNotification(ctx, cmd, entities.TypeAdmin, now)
		if err != nil {
			return entities.Notification{}, err
		}
		adminCopy.ReceiverID = ""
		if err := uc.Repository.CreateNotification(ctx, adminCopy); err != nil {
			return entities.Notification{}, err
		}
	}

	logger.Info("notification sent",
		"event", "notification_sent",
		"module", "engagement/notification-service",
		"layer", "application",
		"notification_id", notification.NotificationID,
		"receiver_id", notification.ReceiverID,
		"broadcast_to_admin", cmd.BroadcastToAdmin,
	)
	return notification, nil
}

func (uc SendUseCase) buildNotification(
	ctx context.Context,
	cmd SendCommand,
	kind entities.NotificationType,
	now time.Time,
) (entities.Notification, error) {
	notificationID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Notification{}, err
	}
	notification := entities.Notification{
		NotificationID: notificationID,
		ReceiverID:     strings.TrimSpace(cmd.ReceiverID),
		Text:           strings.TrimSpace(cmd.Text),
		Name:           strings.TrimSpace(cmd.Name),
		Image:          strings.TrimSpace(cmd.Image),
		Type:           kind,
		CreatedAt:      now,
	}
	if kind == entities.TypeAdmin {
		notification.ReceiverID = ""
	}
	if !notification.ValidateBasics() {
		return entities.Notification{}, domainerrors.ErrInvalidInput
	}
	return notification, nil
}
