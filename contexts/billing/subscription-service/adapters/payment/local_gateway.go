package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"brandlink/contexts/billing/subscription-service/domain/entities"
	"brandlink/contexts/billing/subscription-service/ports"

	"github.com/google/uuid"
)

// LocalGateway is a deterministic in-process PaymentGateway for local wiring
// and tests. Every operation succeeds unless the caller injects a failure.
type LocalGateway struct {
	mu sync.Mutex

	// PeriodDays sets the billing period on checkout; zero means 30.
	PeriodDays int

	// FailNext makes the next gateway call fail once.
	FailNext bool

	Clock     ports.Clock
	cancelled []string
	charges   map[string]int64
}

func NewLocalGateway(clock ports.Clock) *LocalGateway {
	return &LocalGateway{
		Clock:   clock,
		charges: make(map[string]int64),
	}
}

func (g *LocalGateway) now() time.Time {
	if g.Clock != nil {
		return g.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (g *LocalGateway) takeFailure() error {
	if g.FailNext {
		g.FailNext = false
		return errors.New("card declined")
	}
	return nil
}

func (g *LocalGateway) CreateSubscription(_ context.Context, userID string, pkg entities.Package) (ports.ProviderSubscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.takeFailure(); err != nil {
		return ports.ProviderSubscription{}, err
	}

	days := g.PeriodDays
	if days <= 0 {
		days = entities.RenewalPeriodDays
	}
	start := g.now()
	g.charges[userID] += pkg.PriceCents
	return ports.ProviderSubscription{
		ProviderRef:        fmt.Sprintf("local_%s", uuid.NewString()),
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 0, days),
	}, nil
}

func (g *LocalGateway) CancelAtPeriodEnd(_ context.Context, providerRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.takeFailure(); err != nil {
		return err
	}
	g.cancelled = append(g.cancelled, providerRef)
	return nil
}

func (g *LocalGateway) Charge(_ context.Context, userID string, amountCents int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.takeFailure(); err != nil {
		return err
	}
	g.charges[userID] += amountCents
	return nil
}

// ChargedTotal reports the accumulated charges for a user.
func (g *LocalGateway) ChargedTotal(userID string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.charges[userID]
}

// Cancelled reports the provider refs cancelled so far.
func (g *LocalGateway) Cancelled() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.cancelled...)
}
