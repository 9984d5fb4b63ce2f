package entities

import (
	"strings"
	"time"
)

type ProofStatus string

const (
	ProofPending   ProofStatus = "Pending"
	ProofRejected  ProofStatus = "Rejected"
	ProofCompleted ProofStatus = "Completed"
)

// Proof is the influencer's evidence that an accepted collaboration was
// fulfilled: image references plus social-media links. At most one
// non-rejected proof exists per collaboration.
type Proof struct {
	ProofID         string
	CollaborationID string
	CampaignID      string
	InfluencerID    string
	Images          []string
	SocialLinks     []string
	Status          ProofStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Proof) IsRejected() bool {
	return p.Status == ProofRejected
}

func (p Proof) ValidateBasics() bool {
	if strings.TrimSpace(p.ProofID) == "" || strings.TrimSpace(p.CollaborationID) == "" {
		return false
	}
	if len(p.Images) == 0 && len(p.SocialLinks) == 0 {
		return false
	}
	return true
}
