package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
	"github.com/lockin/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	model := models.NotificationModelFromDomain(n)
	return r.db.WithContext(ctx).Save(model).Error
}

// CreateDedup inserts the notification unless its dedup key is already
// taken. The unique index on dedup_key is the authoritative guard;
// RowsAffected tells the caller whether this process won the insert.
func (r *GormNotificationRepository) CreateDedup(ctx context.Context, n *notification.Notification) (bool, error) {
	model := models.NotificationModelFromDomain(n)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedup_key"}},
			DoNothing: true,
		}).
		Create(model)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds a page of the user's notifications, newest first.
// The cursor is the ID of the last notification on the previous page.
func (r *GormNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, opts notification.ListOptions) ([]*notification.Notification, error) {
	query := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ?", userID)

	if opts.UnreadOnly {
		query = query.Where("status = ?", notification.StatusPending)
	}

	if opts.Cursor != nil {
		var anchor models.NotificationModel
		if err := r.db.WithContext(ctx).
			Select("created_at").
			First(&anchor, "id = ?", *opts.Cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, shared.ErrNotFound
			}
			return nil, err
		}
		query = query.Where("(created_at, id) < (?, ?)", anchor.CreatedAt, *opts.Cursor)
	}

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var notificationModels []models.NotificationModel
	if err := query.Order("created_at DESC, id DESC").Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = notificationModels[i].ToDomain()
	}
	return notifications, nil
}

// CountUnread counts pending notifications for the user
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND status = ?", userID, notification.StatusPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
