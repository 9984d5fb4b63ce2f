package entities

import (
	"strings"
	"time"
)

// Origin records which side opened the collaboration.
type Origin string

// Status is the single lifecycle shared by brand invites and influencer
// interests. Pending moves to Accepted or Rejected, Accepted moves to
// Completed or Cancelled. Rejected, Completed, and Cancelled are terminal.
type Status string

const (
	OriginInvited    Origin = "invited"
	OriginInterested Origin = "interested"

	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Collaboration binds one influencer to one campaign. There is at most one
// per (campaign, influencer) pair regardless of which side opened it.
type Collaboration struct {
	CollaborationID string
	CampaignID      string
	BrandID         string
	InfluencerID    string
	Origin          Origin
	Status          Status
	Message         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	RespondedAt     time.Time
	CompletedAt     time.Time
}

func (c Collaboration) IsTerminal() bool {
	return IsTerminalStatus(c.Status)
}

func IsTerminalStatus(status Status) bool {
	switch status {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from the collaboration's current
// status to the target is a legal edge of the lifecycle.
func (c Collaboration) CanTransition(target Status) bool {
	switch c.Status {
	case StatusPending:
		return target == StatusAccepted || target == StatusRejected || target == StatusCancelled
	case StatusAccepted:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

func IsSupportedOrigin(origin Origin) bool {
	return origin == OriginInvited || origin == OriginInterested
}

func IsSupportedStatus(status Status) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (c Collaboration) ValidateBasics() bool {
	if strings.TrimSpace(c.CollaborationID) == "" {
		return false
	}
	if strings.TrimSpace(c.CampaignID) == "" || strings.TrimSpace(c.BrandID) == "" {
		return false
	}
	if strings.TrimSpace(c.InfluencerID) == "" {
		return false
	}
	return IsSupportedOrigin(c.Origin) && IsSupportedStatus(c.Status)
}
