package entities

import (
	"strings"
	"time"
)

type PackageTitle string

type PackageDuration string

type SubscriptionStatus string

const (
	PackageGold     PackageTitle = "Gold"
	PackageSilver   PackageTitle = "Silver"
	PackageDiscount PackageTitle = "Discount"

	DurationMonthly    PackageDuration = "Monthly"
	DurationHalfYearly PackageDuration = "HalfYearly"
	DurationYearly     PackageDuration = "Yearly"

	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"

	// RenewalPeriodDays is the billing period granted on renewal.
	RenewalPeriodDays = 30
)

// Package is a static catalog entry: a tier name plus the monthly campaign
// allowance it buys.
type Package struct {
	PackageID  string
	Title      PackageTitle
	Duration   PackageDuration
	Limit      int
	PriceCents int64
	Features   []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func IsSupportedPackageTitle(title PackageTitle) bool {
	switch title {
	case PackageGold, PackageSilver, PackageDiscount:
		return true
	default:
		return false
	}
}

func IsSupportedPackageDuration(duration PackageDuration) bool {
	switch duration {
	case DurationMonthly, DurationHalfYearly, DurationYearly:
		return true
	default:
		return false
	}
}

func (p Package) ValidateBasics() bool {
	if strings.TrimSpace(p.PackageID) == "" {
		return false
	}
	if !IsSupportedPackageTitle(p.Title) {
		return false
	}
	if !IsSupportedPackageDuration(p.Duration) {
		return false
	}
	return p.Limit >= 1 && p.PriceCents >= 0
}

// Subscription ties a user to a package for one billing period. The period
// bounds are stored as formatted date strings, matching what the billing
// provider reports back.
type Subscription struct {
	SubscriptionID     string
	UserID             string
	PackageID          string
	ProviderRef        string
	Status             SubscriptionStatus
	CurrentPeriodStart string
	CurrentPeriodEnd   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}

// Account carries the user flags the rest of the system reads: whether the
// user currently holds a subscription and which tier it is.
type Account struct {
	UserID     string
	Subscribed bool
	Title      PackageTitle
	UpdatedAt  time.Time
}
