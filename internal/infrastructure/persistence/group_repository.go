package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/shared"
	"github.com/lockin/backend/internal/infrastructure/persistence/models"
)

// GormGroupRepository implements circle.GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Save creates or updates a group
func (r *GormGroupRepository) Save(ctx context.Context, group *circle.Group) error {
	model := models.GroupModelFromDomain(group)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a group with optimistic locking (version check)
func (r *GormGroupRepository) SaveWithLock(ctx context.Context, group *circle.Group, expectedVersion int) error {
	model := models.GroupModelFromDomain(group)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", group.ID, expectedVersion).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a group by its ID
func (r *GormGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*circle.Group, error) {
	var model models.GroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds all groups the user is a member of. The status
// filter is applied against the derived status, so pending and active
// are expressed through window boundaries rather than the stored
// column.
func (r *GormGroupRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *circle.GroupStatus, now time.Time) ([]*circle.Group, error) {
	query := r.db.WithContext(ctx).
		Model(&models.GroupModel{}).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID)

	if status != nil {
		switch *status {
		case circle.GroupStatusArchived:
			query = query.Where("groups.status = ? OR groups.end_at <= ?", circle.GroupStatusArchived, now)
		case circle.GroupStatusPending:
			query = query.Where("groups.status <> ? AND groups.start_at > ?", circle.GroupStatusArchived, now)
		case circle.GroupStatusActive:
			query = query.Where("groups.status <> ? AND groups.start_at <= ? AND groups.end_at > ?",
				circle.GroupStatusArchived, now, now)
		}
	}

	var groupModels []models.GroupModel
	if err := query.Order("groups.created_at DESC").Find(&groupModels).Error; err != nil {
		return nil, err
	}

	groups := make([]*circle.Group, len(groupModels))
	for i := range groupModels {
		groups[i] = groupModels[i].ToDomain()
	}
	return groups, nil
}

// ArchiveExpired archives every non-archived group whose window has
// ended. A single conditional update keeps the sweep idempotent and
// safe under concurrent runs.
func (r *GormGroupRepository) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GroupModel{}).
		Where("status <> ? AND end_at <= ?", circle.GroupStatusArchived, now).
		Updates(map[string]interface{}{
			"status":     circle.GroupStatusArchived,
			"updated_at": now,
		})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete deletes a group
func (r *GormGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GroupModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormMemberRepository implements circle.MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Add inserts a membership. The unique (group_id, user_id) index makes
// duplicate adds a no-op; the stored record is returned either way.
func (r *GormMemberRepository) Add(ctx context.Context, member *circle.Member) (*circle.Member, error) {
	model := models.MemberModelFromDomain(member)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.Find(ctx, member.GroupID, member.UserID)
}

// Save persists changes to an existing membership
func (r *GormMemberRepository) Save(ctx context.Context, member *circle.Member) error {
	model := models.MemberModelFromDomain(member)
	return r.db.WithContext(ctx).Save(model).Error
}

// Find finds the membership for a (group, user) pair
func (r *GormMemberRepository) Find(ctx context.Context, groupID, userID uuid.UUID) (*circle.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGroupID finds all members of a group
func (r *GormMemberRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*circle.Member, error) {
	var memberModels []models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}

	members := make([]*circle.Member, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToDomain()
	}
	return members, nil
}

// Remove deletes the membership for a (group, user) pair
func (r *GormMemberRepository) Remove(ctx context.Context, groupID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.MemberModel{}, "group_id = ? AND user_id = ?", groupID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
