package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	"brandlink/contexts/billing/subscription-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory Repository used by local wiring and tests.
type Store struct {
	mu            sync.RWMutex
	packages      map[string]entities.Package
	subscriptions map[string]entities.Subscription
	accounts      map[string]entities.Account
}

func NewStore() *Store {
	return &Store{
		packages:      make(map[string]entities.Package),
		subscriptions: make(map[string]entities.Subscription),
		accounts:      make(map[string]entities.Account),
	}
}

func (s *Store) CreatePackage(_ context.Context, pkg entities.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packages[pkg.PackageID]; exists {
		return domainerrors.ErrInvalidPackageInput
	}
	s.packages[pkg.PackageID] = pkg
	return nil
}

func (s *Store) UpdatePackage(_ context.Context, pkg entities.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packages[pkg.PackageID]; !exists {
		return domainerrors.ErrPackageNotFound
	}
	s.packages[pkg.PackageID] = pkg
	return nil
}

func (s *Store) GetPackage(_ context.Context, packageID string) (entities.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pkg, exists := s.packages[strings.TrimSpace(packageID)]
	if !exists {
		return entities.Package{}, domainerrors.ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Store) ListPackages(_ context.Context) ([]entities.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Package, 0, len(s.packages))
	for _, pkg := range s.packages {
		items = append(items, pkg)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateSubscription(_ context.Context, subscription entities.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[subscription.SubscriptionID]; exists {
		return domainerrors.ErrSubscriptionExists
	}
	s.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (s *Store) UpdateSubscription(_ context.Context, subscription entities.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[subscription.SubscriptionID]; !exists {
		return domainerrors.ErrSubscriptionNotFound
	}
	s.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (s *Store) GetSubscription(_ context.Context, subscriptionID string) (entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscription, exists := s.subscriptions[strings.TrimSpace(subscriptionID)]
	if !exists {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}
	return subscription, nil
}

func (s *Store) FindActiveByUser(_ context.Context, userID string) (entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, subscription := range s.subscriptions {
		if subscription.UserID == strings.TrimSpace(userID) && subscription.IsActive() {
			return subscription, nil
		}
	}
	return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
}

func (s *Store) ListSubscriptions(_ context.Context, status entities.SubscriptionStatus) ([]entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Subscription, 0, len(s.subscriptions))
	for _, subscription := range s.subscriptions {
		if status != "" && subscription.Status != status {
			continue
		}
		items = append(items, subscription)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpsertAccount(_ context.Context, account entities.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.UserID] = account
	return nil
}

func (s *Store) GetAccount(_ context.Context, userID string) (entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[strings.TrimSpace(userID)]
	if !exists {
		return entities.Account{UserID: strings.TrimSpace(userID)}, nil
	}
	return account, nil
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

// NoopNotifier drops notifications.
type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, ports.NotifierEvent) error {
	return nil
}
