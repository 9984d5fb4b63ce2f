package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) CreatePackage(ctx context.Context, pkg entities.Package) error {
	row := packageModelFromEntity(pkg)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidPackageInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdatePackage(ctx context.Context, pkg entities.Package) error {
	result := r.db.WithContext(ctx).
		Model(&packageModel{}).
		Where("package_id = ?", strings.TrimSpace(pkg.PackageID)).
		Updates(map[string]any{
			"title":       string(pkg.Title),
			"limit_value": pkg.Limit,
			"price_cents": pkg.PriceCents,
			"features":    pkg.Features,
			"updated_at":  pkg.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPackageNotFound
	}
	return nil
}

func (r *Repository) GetPackage(ctx context.Context, packageID string) (entities.Package, error) {
	var row packageModel
	err := r.db.WithContext(ctx).
		Where("package_id = ?", strings.TrimSpace(packageID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Package{}, domainerrors.ErrPackageNotFound
		}
		return entities.Package{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPackages(ctx context.Context) ([]entities.Package, error) {
	var rows []packageModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Package, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateSubscription(ctx context.Context, subscription entities.Subscription) error {
	row := subscriptionModelFromEntity(subscription)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSubscriptionExists
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateSubscription(ctx context.Context, subscription entities.Subscription) error {
	result := r.db.WithContext(ctx).
		Model(&subscriptionModel{}).
		Where("subscription_id = ?", strings.TrimSpace(subscription.SubscriptionID)).
		Updates(map[string]any{
			"status":               string(subscription.Status),
			"current_period_start": subscription.CurrentPeriodStart,
			"current_period_end":   subscription.CurrentPeriodEnd,
			"updated_at":           subscription.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *Repository) GetSubscription(ctx context.Context, subscriptionID string) (entities.Subscription, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", strings.TrimSpace(subscriptionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
		}
		return entities.Subscription{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindActiveByUser(ctx context.Context, userID string) (entities.Subscription, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", strings.TrimSpace(userID), string(entities.SubscriptionActive)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
		}
		return entities.Subscription{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSubscriptions(ctx context.Context, status entities.SubscriptionStatus) ([]entities.Subscription, error) {
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{})
	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}

	var rows []subscriptionModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Subscription, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpsertAccount(ctx context.Context, account entities.Account) error {
	row := accountModel{
		UserID:     strings.TrimSpace(account.UserID),
		Subscribed: account.Subscribed,
		Title:      string(account.Title),
		UpdatedAt:  account.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"subscribed", "title", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) GetAccount(ctx context.Context, userID string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{UserID: strings.TrimSpace(userID)}, nil
		}
		return entities.Account{}, err
	}
	return entities.Account{
		UserID:     row.UserID,
		Subscribed: row.Subscribed,
		Title:      entities.PackageTitle(row.Title),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}, nil
}

type packageModel struct {
	PackageID  string    `gorm:"column:package_id;primaryKey"`
	Title      string    `gorm:"column:title"`
	Duration   string    `gorm:"column:duration"`
	Limit      int       `gorm:"column:limit_value"`
	PriceCents int64     `gorm:"column:price_cents"`
	Features   []string  `gorm:"column:features;type:text[]"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (packageModel) TableName() string {
	return "packages"
}

type subscriptionModel struct {
	SubscriptionID     string    `gorm:"column:subscription_id;primaryKey"`
	UserID             string    `gorm:"column:user_id"`
	PackageID          string    `gorm:"column:package_id"`
	ProviderRef        string    `gorm:"column:provider_ref"`
	Status             string    `gorm:"column:status"`
	CurrentPeriodStart string    `gorm:"column:current_period_start"`
	CurrentPeriodEnd   string    `gorm:"column:current_period_end"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (subscriptionModel) TableName() string {
	return "subscriptions"
}

type accountModel struct {
	UserID     string    `gorm:"column:user_id;primaryKey"`
	Subscribed bool      `gorm:"column:subscribed"`
	Title      string    `gorm:"column:title"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string {
	return "accounts"
}

func packageModelFromEntity(item entities.Package) packageModel {
	return packageModel{
		PackageID:  strings.TrimSpace(item.PackageID),
		Title:      string(item.Title),
		Duration:   string(item.Duration),
		Limit:      item.Limit,
		PriceCents: item.PriceCents,
		Features:   item.Features,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func (m packageModel) toEntity() entities.Package {
	return entities.Package{
		PackageID:  m.PackageID,
		Title:      entities.PackageTitle(m.Title),
		Duration:   entities.PackageDuration(m.Duration),
		Limit:      m.Limit,
		PriceCents: m.PriceCents,
		Features:   m.Features,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

func subscriptionModelFromEntity(item entities.Subscription) subscriptionModel {
	return subscriptionModel{
		SubscriptionID:     strings.TrimSpace(item.SubscriptionID),
		UserID:             strings.TrimSpace(item.UserID),
		PackageID:          strings.TrimSpace(item.PackageID),
		ProviderRef:        strings.TrimSpace(item.ProviderRef),
		Status:             string(item.Status),
		CurrentPeriodStart: item.CurrentPeriodStart,
		CurrentPeriodEnd:   item.CurrentPeriodEnd,
		CreatedAt:          item.CreatedAt.UTC(),
		UpdatedAt:          item.UpdatedAt.UTC(),
	}
}

func (m subscriptionModel) toEntity() entities.Subscription {
	return entities.Subscription{
		SubscriptionID:     m.SubscriptionID,
		UserID:             m.UserID,
		PackageID:          m.PackageID,
		ProviderRef:        m.ProviderRef,
		Status:             entities.SubscriptionStatus(m.Status),
		CurrentPeriodStart: m.CurrentPeriodStart,
		CurrentPeriodEnd:   m.CurrentPeriodEnd,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
