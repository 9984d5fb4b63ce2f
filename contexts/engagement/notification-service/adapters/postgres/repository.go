package postgres

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"brandlink/contexts/engagement/notification-service/domain/entities"
	domainerrors "brandlink/contexts/engagement/notification-service/domain/errors"

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

func (r *Repository) CreateNotification(ctx context.Context, notification entities.Notification) error {
	row := notificationModelFromEntity(notification)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListByReceiver(ctx context.Context, receiverID string) ([]entities.Notification, error) {
	var rows []notificationModel
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND type = ?", strings.TrimSpace(receiverID), string(entities.TypeUser)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) CountUnreadByReceiver(ctx context.Context, receiverID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("receiver_id = ? AND type = ? AND read = false", strings.TrimSpace(receiverID), string(entities.TypeUser)).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) MarkAllReadByReceiver(ctx context.Context, receiverID string, readAt time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("receiver_id = ? AND type = ? AND read = false", strings.TrimSpace(receiverID), string(entities.TypeUser)).
		Updates(map[string]any{
			"read":    true,
			"read_at": readAt.UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) ListAdminFeed(ctx context.Context) ([]entities.Notification, error) {
	var rows []notificationModel
	err := r.db.WithContext(ctx).
		Where("type = ?", string(entities.TypeAdmin)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) MarkAdminRead(ctx context.Context, notificationID string) error {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("notification_id = ? AND type = ?", strings.TrimSpace(notificationID), string(entities.TypeAdmin)).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

type notificationModel struct {
	NotificationID string     `gorm:"column:notification_id;primaryKey"`
	ReceiverID     string     `gorm:"column:receiver_id;index"`
	Text           string     `gorm:"column:text"`
	Name           string     `gorm:"column:name"`
	Image          string     `gorm:"column:image"`
	Type           string     `gorm:"column:type"`
	Read           bool       `gorm:"column:read"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "notifications"
}

func notificationModelFromEntity(item entities.Notification) notificationModel {
	return notificationModel{
		NotificationID: strings.TrimSpace(item.NotificationID),
		ReceiverID:     strings.TrimSpace(item.ReceiverID),
		Text:           item.Text,
		Name:           item.Name,
		Image:          item.Image,
		Type:           string(item.Type),
		Read:           item.Read,
		CreatedAt:      item.CreatedAt.UTC(),
	}
}

func (m notificationModel) toEntity() entities.Notification {
	return entities.Notification{
		NotificationID: m.NotificationID,
		ReceiverID:     m.ReceiverID,
		Text:           m.Text,
		Name:           m.Name,
		Image:          m.Image,
		Type:           entities.NotificationType(m.Type),
		Read:           m.Read,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func toEntities(rows []notificationModel) []entities.Notification {
	items := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}
