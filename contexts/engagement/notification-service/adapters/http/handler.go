package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"brandlink/contexts/engagement/notification-service/application/commands"
	"brandlink/contexts/engagement/notification-service/application/queries"
	"brandlink/contexts/engagement/notification-service/domain/entities"
	httptransport "brandlink/contexts/engagement/notification-service/transport/http"
)

type Handler struct {
	Send          commands.SendUseCase
	MarkAllRead   commands.MarkAllReadUseCase
	MarkAdminRead commands.MarkAdminReadUseCase
	Queries       queries.QueryUseCase
	Logger        *slog.Logger
}

func (h Handler) SendHandler(ctx context.Context, req httptransport.SendNotificationRequest) (httptransport.NotificationResponse, error) {
	notification, err := h.Send.Execute(ctx, commands.SendCommand{
		Text:             req.Text,
		ReceiverID:       req.ReceiverID,
		Name:             req.Name,
		Image:            req.Image,
		BroadcastToAdmin: req.BroadcastToAdmin,
	})
	if err != nil {
		return httptransport.NotificationResponse{}, err
	}
	return httptransport.NotificationResponse{Notification: mapNotification(notification)}, nil
}

func (h Handler) FeedHandler(ctx context.Context, receiverID string) (httptransport.FeedResponse, error) {
	feed, err := h.Queries.FeedForReceiver(ctx, receiverID)
	if err != nil {
		return httptransport.FeedResponse{}, err
	}
	return httptransport.FeedResponse{
		Notifications: mapNotifications(feed.Notifications),
		Unread:        feed.Unread,
	}, nil
}

func (h Handler) MarkAllReadHandler(ctx context.Context, receiverID string) (httptransport.MarkReadResponse, error) {
	marked, err := h.MarkAllRead.Execute(ctx, receiverID)
	if err != nil {
		return httptransport.MarkReadResponse{}, err
	}
	return httptransport.MarkReadResponse{Marked: marked}, nil
}

func (h Handler) AdminFeedHandler(ctx context.Context) (httptransport.AdminFeedResponse, error) {
	notifications, err := h.Queries.AdminFeed(ctx)
	if err != nil {
		return httptransport.AdminFeedResponse{}, err
	}
	return httptransport.AdminFeedResponse{Notifications: mapNotifications(notifications)}, nil
}

func (h Handler) MarkAdminReadHandler(ctx context.Context, notificationID string) error {
	return h.MarkAdminRead.Execute(ctx, notificationID)
}

func mapNotification(item entities.Notification) httptransport.NotificationView {
	return httptransport.NotificationView{
		NotificationID: item.NotificationID,
		ReceiverID:     item.ReceiverID,
		Text:           item.Text,
		Name:           item.Name,
		Image:          item.Image,
		Type:           string(item.Type),
		Read:           item.Read,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapNotifications(items []entities.Notification) []httptransport.NotificationView {
	views := make([]httptransport.NotificationView, 0, len(items))
	for _, item := range items {
		views = append(views, mapNotification(item))
	}
	return views
}
