package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"brandlink/contexts/engagement/notification-service/domain/entities"
	domainerrors "brandlink/contexts/engagement/notification-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory Repository used by local wiring and tests.
type Store struct {
	mu            sync.RWMutex
	notifications map[string]entities.Notification
}

func NewStore() *Store {
	return &Store{
		notifications: make(map[string]entities.Notification),
	}
}

func (s *Store) CreateNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notifications[notification.NotificationID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.notifications[notification.NotificationID] = notification
	return nil
}

func (s *Store) ListByReceiver(_ context.Context, receiverID string) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receiverID = strings.TrimSpace(receiverID)
	items := make([]entities.Notification, 0)
	for _, notification := range s.notifications {
		if notification.Type == entities.TypeUser && notification.ReceiverID == receiverID {
			items = append(items, notification)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) CountUnreadByReceiver(_ context.Context, receiverID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receiverID = strings.TrimSpace(receiverID)
	count := 0
	for _, notification := range s.notifications {
		if notification.Type == entities.TypeUser && notification.ReceiverID == receiverID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkAllReadByReceiver(_ context.Context, receiverID string, _ time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receiverID = strings.TrimSpace(receiverID)
	marked := 0
	for id, notification := range s.notifications {
		if notification.Type == entities.TypeUser && notification.ReceiverID == receiverID && !notification.Read {
			notification.Read = true
			s.notifications[id] = notification
			marked++
		}
	}
	return marked, nil
}

func (s *Store) ListAdminFeed(_ context.Context) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Notification, 0)
	for _, notification := range s.notifications {
		if notification.Type == entities.TypeAdmin {
			items = append(items, notification)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) MarkAdminRead(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, exists := s.notifications[strings.TrimSpace(notificationID)]
	if !exists || notification.Type != entities.TypeAdmin {
		return domainerrors.ErrNotificationNotFound
	}
	notification.Read = true
	s.notifications[notification.NotificationID] = notification
	return nil
}

func sortNewestFirst(items []entities.Notification) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].NotificationID < items[j].NotificationID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns the same instant on every call.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
