package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/campaign-service/domain/errors"
	"brandlink/contexts/marketplace/campaign-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaign.CampaignID)).
		Updates(campaignUpdatesFromEntity(campaign))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, int, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if strings.TrimSpace(filter.BrandID) != "" {
		tx = tx.Where("brand_id = ?", strings.TrimSpace(filter.BrandID))
	}
	if strings.TrimSpace(filter.Category) != "" {
		tx = tx.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	var rows []campaignModel
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) CountCreatedBetween(ctx context.Context, brandID string, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("brand_id = ? AND created_at BETWEEN ? AND ?", strings.TrimSpace(brandID), from.UTC(), to.UTC()).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

type campaignModel struct {
	CampaignID         string    `gorm:"column:campaign_id;primaryKey"`
	BrandID            string    `gorm:"column:brand_id"`
	Name               string    `gorm:"column:name"`
	Image              string    `gorm:"column:image"`
	Description        string    `gorm:"column:description"`
	Category           string    `gorm:"column:category"`
	CollaborationLimit int       `gorm:"column:collaboration_limit"`
	InfluencerCount    int       `gorm:"column:influencer_count"`
	ApprovalStatus     string    `gorm:"column:approval_status"`
	Status             string    `gorm:"column:status"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:         strings.TrimSpace(item.CampaignID),
		BrandID:            strings.TrimSpace(item.BrandID),
		Name:               strings.TrimSpace(item.Name),
		Image:              strings.TrimSpace(item.Image),
		Description:        strings.TrimSpace(item.Description),
		Category:           strings.TrimSpace(item.Category),
		CollaborationLimit: item.CollaborationLimit,
		InfluencerCount:    item.InfluencerCount,
		ApprovalStatus:     string(item.ApprovalStatus),
		Status:             string(item.Status),
		CreatedAt:          item.CreatedAt.UTC(),
		UpdatedAt:          item.UpdatedAt.UTC(),
	}
}

func campaignUpdatesFromEntity(item entities.Campaign) map[string]any {
	row := campaignModelFromEntity(item)
	return map[string]any{
		"name":                row.Name,
		"image":               row.Image,
		"description":         row.Description,
		"category":            row.Category,
		"collaboration_limit": row.CollaborationLimit,
		"influencer_count":    row.InfluencerCount,
		"approval_status":     row.ApprovalStatus,
		"status":              row.Status,
		"updated_at":          row.UpdatedAt,
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:         m.CampaignID,
		BrandID:            m.BrandID,
		Name:               m.Name,
		Image:              m.Image,
		Description:        m.Description,
		Category:           m.Category,
		CollaborationLimit: m.CollaborationLimit,
		InfluencerCount:    m.InfluencerCount,
		ApprovalStatus:     entities.ApprovalStatus(m.ApprovalStatus),
		Status:             entities.CampaignStatus(m.Status),
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
