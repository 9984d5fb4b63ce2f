package postgres

import (
	"context"
	"errors"
	"strings"

	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"

	"gorm.io/gorm"
)

// CampaignReader reads campaign snapshots from the shared campaigns table.
type CampaignReader struct {
	db *gorm.DB
}

func NewCampaignReader(db *gorm.DB) *CampaignReader {
	return &CampaignReader{db: db}
}

type campaignSnapshotModel struct {
	CampaignID         string `gorm:"column:campaign_id;primaryKey"`
	BrandID            string `gorm:"column:brand_id"`
	Name               string `gorm:"column:name"`
	Image              string `gorm:"column:image"`
	CollaborationLimit int    `gorm:"column:collaboration_limit"`
	InfluencerCount    int    `gorm:"column:influencer_count"`
	ApprovalStatus     string `gorm:"column:approval_status"`
	Status             string `gorm:"column:status"`
}

func (campaignSnapshotModel) TableName() string {
	return "campaigns"
}

func (r *CampaignReader) GetCampaignSnapshot(ctx context.Context, campaignID string) (ports.CampaignSnapshot, error) {
	var row campaignSnapshotModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CampaignSnapshot{}, domainerrors.ErrCampaignNotFound
		}
		return ports.CampaignSnapshot{}, err
	}
	return ports.CampaignSnapshot{
		CampaignID:         row.CampaignID,
		BrandID:            row.BrandID,
		Name:               row.Name,
		Image:              row.Image,
		CollaborationLimit: row.CollaborationLimit,
		InfluencerCount:    row.InfluencerCount,
		ApprovalStatus:     row.ApprovalStatus,
		Active:             row.Status == "active",
	}, nil
}
