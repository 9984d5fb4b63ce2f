package entities

import (
	"strings"
	"time"
)

type ApprovalStatus string
type CampaignStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"

	CampaignStatusActive  CampaignStatus = "active"
	CampaignStatusDeleted CampaignStatus = "deleted"

	// DefaultCollaborationLimit applies when a campaign is created without
	// an explicit limit, matching observed production behavior.
	DefaultCollaborationLimit = 2
)

type Campaign struct {
	CampaignID         string
	BrandID            string
	Name               string
	Image              string
	Description        string
	Category           string
	CollaborationLimit int
	InfluencerCount    int
	ApprovalStatus     ApprovalStatus
	Status             CampaignStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (c Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}

func (c Campaign) IsApproved() bool {
	return c.ApprovalStatus == ApprovalApproved
}

// EffectiveCollaborationLimit resolves the per-campaign slot cap, falling
// back to the default when the stored limit is unset or zero.
func (c Campaign) EffectiveCollaborationLimit() int {
	if c.CollaborationLimit <= 0 {
		return DefaultCollaborationLimit
	}
	return c.CollaborationLimit
}

func (c Campaign) HasOpenSlot() bool {
	return c.InfluencerCount < c.EffectiveCollaborationLimit()
}

func (c Campaign) ValidateBasics() bool {
	name := strings.TrimSpace(c.Name)
	description := strings.TrimSpace(c.Description)

	return name != "" &&
		len(name) >= 3 &&
		len(name) <= 100 &&
		description != "" &&
		len(description) <= 2000 &&
		strings.TrimSpace(c.BrandID) != "" &&
		c.CollaborationLimit >= 0
}

func IsSupportedApprovalStatus(value ApprovalStatus) bool {
	switch value {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}
