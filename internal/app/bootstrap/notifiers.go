package bootstrap

import (
	"context"

	billingports "brandlink/contexts/billing/subscription-service/ports"
	notificationcommands "brandlink/contexts/engagement/notification-service/application/commands"
	campaignports "brandlink/contexts/marketplace/campaign-service/ports"
	collaborationports "brandlink/contexts/marketplace/collaboration-service/ports"
)

// The producer contexts each declare their own Notifier port; all of them
// fan into the notification service's send use case here.

type campaignNotifier struct {
	send notificationcommands.SendUseCase
}

func (n campaignNotifier) Send(ctx context.Context, event campaignports.NotifierEvent) error {
	_, err := n.send.Execute(ctx, notificationcommands.SendCommand{
		Text:             event.Text,
		ReceiverID:       event.ReceiverID,
		Name:             event.Name,
		Image:            event.Image,
		BroadcastToAdmin: event.BroadcastToAdmin,
	})
	return err
}

type collaborationNotifier struct {
	send notificationcommands.SendUseCase
}

func (n collaborationNotifier) Send(ctx context.Context, event collaborationports.NotifierEvent) error {
	_, err := n.send.Execute(ctx, notificationcommands.SendCommand{
		Text:             event.Text,
		ReceiverID:       event.ReceiverID,
		Name:             event.Name,
		Image:            event.Image,
		BroadcastToAdmin: event.BroadcastToAdmin,
	})
	return err
}

type billingNotifier struct {
	send notificationcommands.SendUseCase
}

func (n billingNotifier) Send(ctx context.Context, event billingports.NotifierEvent) error {
	_, err := n.send.Execute(ctx, notificationcommands.SendCommand{
		Text:             event.Text,
		ReceiverID:       event.ReceiverID,
		Name:             event.Name,
		Image:            event.Image,
		BroadcastToAdmin: event.BroadcastToAdmin,
	})
	return err
}
