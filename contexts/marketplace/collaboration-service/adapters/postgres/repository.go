package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	defaultCollaborationLimit = 2
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

func (r *Repository) CreateCollaboration(ctx context.Context, collaboration entities.Collaboration) error {
	row := collaborationModelFromEntity(collaboration)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyInvited
		}
		return err
	}
	return nil
}

func (r *Repository) GetCollaboration(ctx context.Context, collaborationID string) (entities.Collaboration, error) {
	var row collaborationModel
	err := r.db.WithContext(ctx).
		Where("collaboration_id = ?", strings.TrimSpace(collaborationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Collaboration{}, domainerrors.ErrCollaborationNotFound
		}
		return entities.Collaboration{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateCollaboration(ctx context.Context, collaboration entities.Collaboration) error {
	result := r.db.WithContext(ctx).
		Model(&collaborationModel{}).
		Where("collaboration_id = ?", strings.TrimSpace(collaboration.CollaborationID)).
		Updates(collaborationUpdatesFromEntity(collaboration))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCollaborationNotFound
	}
	return nil
}

func (r *Repository) FindByCampaignAndInfluencer(ctx context.Context, campaignID, influencerID string) (entities.Collaboration, error) {
	var row collaborationModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND influencer_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(influencerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Collaboration{}, domainerrors.ErrCollaborationNotFound
		}
		return entities.Collaboration{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCollaborations(ctx context.Context, filter ports.CollaborationFilter) ([]entities.Collaboration, int, error) {
	tx := r.db.WithContext(ctx).Model(&collaborationModel{})
	if strings.TrimSpace(filter.CampaignID) != "" {
		tx = tx.Where("campaign_id = ?", strings.TrimSpace(filter.CampaignID))
	}
	if strings.TrimSpace(filter.BrandID) != "" {
		tx = tx.Where("brand_id = ?", strings.TrimSpace(filter.BrandID))
	}
	if strings.TrimSpace(filter.InfluencerID) != "" {
		tx = tx.Where("influencer_id = ?", strings.TrimSpace(filter.InfluencerID))
	}
	if filter.Origin != "" {
		tx = tx.Where("origin = ?", string(filter.Origin))
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

	var rows []collaborationModel
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Collaboration, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) CountOpenedBetween(ctx context.Context, campaignID string, origin entities.Origin, from, to time.Time) (int, error) {
	tx := r.db.WithContext(ctx).
		Model(&collaborationModel{}).
		Where("campaign_id = ? AND created_at BETWEEN ? AND ?", strings.TrimSpace(campaignID), from.UTC(), to.UTC())
	if origin != "" {
		tx = tx.Where("origin = ?", string(origin))
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// AcceptCollaboration is the slot-taking transaction: the campaign row is
// locked FOR UPDATE, the influencer count re-checked against the
// collaboration limit, the counter incremented, the collaboration flipped,
// and the accepted event appended to the outbox. Concurrent accepts for the
// same campaign serialize on the row lock, so the counter can never pass
// the limit.
func (r *Repository) AcceptCollaboration(
	ctx context.Context,
	collaborationID string,
	now time.Time,
	envelope ports.EventEnvelope,
) (ports.AcceptResult, error) {
	result := ports.AcceptResult{}
	timestamp := now.UTC()
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row collaborationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collaboration_id = ?", strings.TrimSpace(collaborationID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCollaborationNotFound
			}
			return err
		}

		collaboration := row.toEntity()
		if collaboration.IsTerminal() {
			return domainerrors.ErrAlreadyFinalized
		}
		if collaboration.Status != entities.StatusPending {
			return domainerrors.ErrInvalidStatusTransition
		}

		var campaign campaignRowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ?", collaboration.CampaignID).
			First(&campaign).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCampaignNotFound
			}
			return err
		}

		limit := campaign.CollaborationLimit
		if limit <= 0 {
			limit = defaultCollaborationLimit
		}
		if campaign.InfluencerCount >= limit {
			return fmt.Errorf("%w: limit %d reached with %d accepted", domainerrors.ErrQuotaExceeded, limit, campaign.InfluencerCount)
		}

		if err := tx.Model(&campaignRowModel{}).
			Where("campaign_id = ?", campaign.CampaignID).
			Updates(map[string]any{
				"influencer_count": campaign.InfluencerCount + 1,
				"updated_at":       timestamp,
			}).
			Error; err != nil {
			return err
		}

		collaboration.Status = entities.StatusAccepted
		collaboration.RespondedAt = timestamp
		collaboration.UpdatedAt = timestamp
		if err := tx.Model(&collaborationModel{}).
			Where("collaboration_id = ?", collaboration.CollaborationID).
			Updates(collaborationUpdatesFromEntity(collaboration)).
			Error; err != nil {
			return err
		}

		if err := insertOutboxEnvelopeTx(tx, envelope); err != nil {
			return err
		}

		result.Collaboration = collaboration
		result.InfluencerCount = campaign.InfluencerCount + 1
		return nil
	})
	if err != nil {
		return ports.AcceptResult{}, err
	}
	return result, nil
}

// CompleteCollaboration flips an Accepted collaboration and its non-rejected
// proof to Completed in one transaction. The campaign counter is untouched.
func (r *Repository) CompleteCollaboration(
	ctx context.Context,
	collaborationID string,
	now time.Time,
	envelope ports.EventEnvelope,
) (entities.Collaboration, error) {
	var completed entities.Collaboration
	timestamp := now.UTC()
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row collaborationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collaboration_id = ?", strings.TrimSpace(collaborationID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCollaborationNotFound
			}
			return err
		}

		collaboration := row.toEntity()
		if collaboration.IsTerminal() {
			return domainerrors.ErrAlreadyFinalized
		}
		if collaboration.Status != entities.StatusAccepted {
			return domainerrors.ErrInvalidStatusTransition
		}

		var proof proofModel
		if err := tx.Where("collaboration_id = ? AND status <> ?", collaboration.CollaborationID, string(entities.ProofRejected)).
			First(&proof).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrProofRequired
			}
			return err
		}

		collaboration.Status = entities.StatusCompleted
		collaboration.CompletedAt = timestamp
		collaboration.UpdatedAt = timestamp
		if err := tx.Model(&collaborationModel{}).
			Where("collaboration_id = ?", collaboration.CollaborationID).
			Updates(collaborationUpdatesFromEntity(collaboration)).
			Error; err != nil {
			return err
		}

		if err := tx.Model(&proofModel{}).
			Where("proof_id = ?", proof.ProofID).
			Updates(map[string]any{
				"status":     string(entities.ProofCompleted),
				"updated_at": timestamp,
			}).
			Error; err != nil {
			return err
		}

		if err := insertOutboxEnvelopeTx(tx, envelope); err != nil {
			return err
		}

		completed = collaboration
		return nil
	})
	if err != nil {
		return entities.Collaboration{}, err
	}
	return completed, nil
}

// CreateProof inserts the proof after re-checking for an earlier non-rejected
// one under a lock on the collaboration row, so concurrent submissions
// serialize and at most one can land. The partial unique index on
// collaboration_id backs the same invariant at the schema level.
func (r *Repository) CreateProof(ctx context.Context, proof entities.Proof) error {
	row := proofModelFromEntity(proof)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collaboration collaborationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collaboration_id = ?", row.CollaborationID).
			First(&collaboration).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCollaborationNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&proofModel{}).
			Where("collaboration_id = ? AND status <> ?", row.CollaborationID, string(entities.ProofRejected)).
			Count(&existing).
			Error; err != nil {
			return err
		}
		if existing > 0 {
			return domainerrors.ErrDuplicateSubmission
		}

		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateSubmission
			}
			return err
		}
		return nil
	})
}

func (r *Repository) GetProofByCollaboration(ctx context.Context, collaborationID string) (entities.Proof, error) {
	var row proofModel
	err := r.db.WithContext(ctx).
		Where("collaboration_id = ?", strings.TrimSpace(collaborationID)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proof{}, domainerrors.ErrProofNotFound
		}
		return entities.Proof{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProofsByCampaigns(ctx context.Context, campaignIDs []string) ([]entities.Proof, error) {
	trimmed := make([]string, 0, len(campaignIDs))
	for _, id := range campaignIDs {
		if strings.TrimSpace(id) != "" {
			trimmed = append(trimmed, strings.TrimSpace(id))
		}
	}
	if len(trimmed) == 0 {
		return []entities.Proof{}, nil
	}

	var rows []proofModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id IN ?", trimmed).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Proof, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	return insertOutboxEnvelopeTx(r.db.WithContext(ctx), envelope)
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

func insertOutboxEnvelopeTx(tx *gorm.DB, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	createResult := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected == 0 {
		var existing outboxModel
		if err := tx.Select("payload").Where("outbox_id = ?", row.OutboxID).First(&existing).Error; err != nil {
			return err
		}
		if !bytes.Equal(existing.Payload, row.Payload) {
			return domainerrors.ErrInvalidInput
		}
	}
	return nil
}

type collaborationModel struct {
	CollaborationID string     `gorm:"column:collaboration_id;primaryKey"`
	CampaignID      string     `gorm:"column:campaign_id;index:idx_collab_pair,unique"`
	BrandID         string     `gorm:"column:brand_id"`
	InfluencerID    string     `gorm:"column:influencer_id;index:idx_collab_pair,unique"`
	Origin          string     `gorm:"column:origin"`
	Status          string     `gorm:"column:status"`
	Message         string     `gorm:"column:message"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	RespondedAt     *time.Time `gorm:"column:responded_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
}

func (collaborationModel) TableName() string {
	return "collaborations"
}

type proofModel struct {
	ProofID         string    `gorm:"column:proof_id;primaryKey"`
	CollaborationID string    `gorm:"column:collaboration_id;index:idx_proof_active,unique,where:status <> 'Rejected'"`
	CampaignID      string    `gorm:"column:campaign_id"`
	InfluencerID    string    `gorm:"column:influencer_id"`
	Images          []string  `gorm:"column:images;type:text[]"`
	SocialLinks     []string  `gorm:"column:social_links;type:text[]"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (proofModel) TableName() string {
	return "collaboration_proofs"
}

// campaignRowModel is the collaboration module's write view onto the shared
// campaigns table, used only for slot accounting under the row lock.
type campaignRowModel struct {
	CampaignID         string `gorm:"column:campaign_id;primaryKey"`
	BrandID            string `gorm:"column:brand_id"`
	CollaborationLimit int    `gorm:"column:collaboration_limit"`
	InfluencerCount    int    `gorm:"column:influencer_count"`
}

func (campaignRowModel) TableName() string {
	return "campaigns"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "collaboration_outbox"
}

func collaborationModelFromEntity(item entities.Collaboration) collaborationModel {
	row := collaborationModel{
		CollaborationID: strings.TrimSpace(item.CollaborationID),
		CampaignID:      strings.TrimSpace(item.CampaignID),
		BrandID:         strings.TrimSpace(item.BrandID),
		InfluencerID:    strings.TrimSpace(item.InfluencerID),
		Origin:          string(item.Origin),
		Status:          string(item.Status),
		Message:         strings.TrimSpace(item.Message),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
	if !item.RespondedAt.IsZero() {
		responded := item.RespondedAt.UTC()
		row.RespondedAt = &responded
	}
	if !item.CompletedAt.IsZero() {
		completed := item.CompletedAt.UTC()
		row.CompletedAt = &completed
	}
	return row
}

func collaborationUpdatesFromEntity(item entities.Collaboration) map[string]any {
	row := collaborationModelFromEntity(item)
	return map[string]any{
		"origin":       row.Origin,
		"status":       row.Status,
		"message":      row.Message,
		"updated_at":   row.UpdatedAt,
		"responded_at": row.RespondedAt,
		"completed_at": row.CompletedAt,
	}
}

func (m collaborationModel) toEntity() entities.Collaboration {
	item := entities.Collaboration{
		CollaborationID: m.CollaborationID,
		CampaignID:      m.CampaignID,
		BrandID:         m.BrandID,
		InfluencerID:    m.InfluencerID,
		Origin:          entities.Origin(m.Origin),
		Status:          entities.Status(m.Status),
		Message:         m.Message,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
	if m.RespondedAt != nil {
		item.RespondedAt = m.RespondedAt.UTC()
	}
	if m.CompletedAt != nil {
		item.CompletedAt = m.CompletedAt.UTC()
	}
	return item
}

func proofModelFromEntity(item entities.Proof) proofModel {
	return proofModel{
		ProofID:         strings.TrimSpace(item.ProofID),
		CollaborationID: strings.TrimSpace(item.CollaborationID),
		CampaignID:      strings.TrimSpace(item.CampaignID),
		InfluencerID:    strings.TrimSpace(item.InfluencerID),
		Images:          append([]string(nil), item.Images...),
		SocialLinks:     append([]string(nil), item.SocialLinks...),
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m proofModel) toEntity() entities.Proof {
	return entities.Proof{
		ProofID:         m.ProofID,
		CollaborationID: m.CollaborationID,
		CampaignID:      m.CampaignID,
		InfluencerID:    m.InfluencerID,
		Images:          append([]string(nil), m.Images...),
		SocialLinks:     append([]string(nil), m.SocialLinks...),
		Status:          entities.ProofStatus(m.Status),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
