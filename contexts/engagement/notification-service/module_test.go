package notificationservice

import (
	"context"
	"errors"
	"testing"

	domainerrors "brandlink/contexts/engagement/notification-service/domain/errors"
	httptransport "brandlink/contexts/engagement/notification-service/transport/http"
)

func TestFeedAndUnreadCount(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := module.Handler.SendHandler(ctx, httptransport.SendNotificationRequest{
			Text:       text,
			ReceiverID: "influencer-1",
		}); err != nil {
			t.Fatalf("send %q: %v", text, err)
		}
	}
	if _, err := module.Handler.SendHandler(ctx, httptransport.SendNotificationRequest{
		Text:       "someone else's",
		ReceiverID: "influencer-2",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	feed, err := module.Handler.FeedHandler(ctx, "influencer-1")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Notifications) != 3 || feed.Unread != 3 {
		t.Fatalf("feed = %d items, %d unread; want 3 and 3", len(feed.Notifications), feed.Unread)
	}

	marked, err := module.Handler.MarkAllReadHandler(ctx, "influencer-1")
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if marked.Marked != 3 {
		t.Fatalf("marked = %d, want 3", marked.Marked)
	}

	feed, err = module.Handler.FeedHandler(ctx, "influencer-1")
	if err != nil {
		t.Fatalf("feed after mark: %v", err)
	}
	if feed.Unread != 0 {
		t.Fatalf("unread after mark = %d, want 0", feed.Unread)
	}

	// The second receiver's feed is untouched.
	other, err := module.Handler.FeedHandler(ctx, "influencer-2")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if other.Unread != 1 {
		t.Fatalf("unread = %d, want 1", other.Unread)
	}
}

func TestAdminBroadcastLandsOnSeparateFeed(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	if _, err := module.Handler.SendHandler(ctx, httptransport.SendNotificationRequest{
		Text:             "proof submitted",
		ReceiverID:       "brand-1",
		BroadcastToAdmin: true,
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	admin, err := module.Handler.AdminFeedHandler(ctx)
	if err != nil {
		t.Fatalf("admin feed: %v", err)
	}
	if len(admin.Notifications) != 1 {
		t.Fatalf("admin feed = %d items, want 1", len(admin.Notifications))
	}
	if admin.Notifications[0].ReceiverID != "" {
		t.Fatalf("admin entry carries receiver %q", admin.Notifications[0].ReceiverID)
	}

	feed, err := module.Handler.FeedHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Notifications) != 1 {
		t.Fatalf("receiver feed = %d items, want 1", len(feed.Notifications))
	}

	// Reading the receiver copy leaves the admin copy unread.
	if _, err := module.Handler.MarkAllReadHandler(ctx, "brand-1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	admin, err = module.Handler.AdminFeedHandler(ctx)
	if err != nil {
		t.Fatalf("admin feed: %v", err)
	}
	if admin.Notifications[0].Read {
		t.Fatalf("admin entry marked read by receiver mark-all")
	}

	if err := module.Handler.MarkAdminReadHandler(ctx, admin.Notifications[0].NotificationID); err != nil {
		t.Fatalf("mark admin read: %v", err)
	}
	admin, err = module.Handler.AdminFeedHandler(ctx)
	if err != nil {
		t.Fatalf("admin feed: %v", err)
	}
	if !admin.Notifications[0].Read {
		t.Fatalf("admin entry still unread after mark")
	}
}

func TestSendValidation(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	_, err := module.Handler.SendHandler(ctx, httptransport.SendNotificationRequest{ReceiverID: "brand-1"})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("empty text err = %v, want ErrInvalidInput", err)
	}
	_, err = module.Handler.SendHandler(ctx, httptransport.SendNotificationRequest{Text: "orphan"})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("missing receiver err = %v, want ErrInvalidInput", err)
	}

	if err := module.Handler.MarkAdminReadHandler(ctx, "missing"); !errors.Is(err, domainerrors.ErrNotificationNotFound) {
		t.Fatalf("mark missing admin err = %v, want ErrNotificationNotFound", err)
	}
}
