package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/shared"
	"github.com/lockin/backend/internal/infrastructure/persistence/models"
)

// GormSessionRepository implements focus.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Save creates or updates a session
func (r *GormSessionRepository) Save(ctx context.Context, session *focus.Session) error {
	model := models.SessionModelFromDomain(session)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithStatusCheck saves the session only if the stored status still
// matches expectedStatus. Concurrent transitions race on this check;
// the loser sees shared.ErrConcurrencyConflict and must re-read.
func (r *GormSessionRepository) SaveWithStatusCheck(ctx context.Context, session *focus.Session, expectedStatus focus.SessionStatus) error {
	model := models.SessionModelFromDomain(session)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND status = ?", session.ID, expectedStatus).
		Select("Status", "StartedAt", "EndedAt", "LastTransitionAt",
			"RunningSince", "AccumulatedSeconds", "Version", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a session by its ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*focus.Session, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGroupID finds all sessions of a group, newest first
func (r *GormSessionRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*focus.Session, error) {
	var sessionModels []models.SessionModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("scheduled_at DESC").
		Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]*focus.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = sessionModels[i].ToDomain()
	}
	return sessions, nil
}

// FindByUserID finds sessions the user participates in, newest first
func (r *GormSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*focus.Session, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SessionModel{}).
		Joins("JOIN session_participants ON session_participants.session_id = sessions.id").
		Where("session_participants.user_id = ?", userID).
		Order("sessions.scheduled_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var sessionModels []models.SessionModel
	if err := query.Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]*focus.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = sessionModels[i].ToDomain()
	}
	return sessions, nil
}

// GormParticipantRepository implements focus.ParticipantRepository using GORM
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewGormParticipantRepository creates a new GormParticipantRepository
func NewGormParticipantRepository(db *gorm.DB) *GormParticipantRepository {
	return &GormParticipantRepository{db: db}
}

// GetOrCreate inserts the participant unless the (session, user) pair
// already exists, then returns the stored record. Safe under
// concurrent joins.
func (r *GormParticipantRepository) GetOrCreate(ctx context.Context, participant *focus.Participant) (*focus.Participant, error) {
	model := models.ParticipantModelFromDomain(participant)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, err
	}

	var stored models.ParticipantModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", participant.SessionID, participant.UserID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return stored.ToDomain(), nil
}

// FindBySessionID finds all participants of a session
func (r *GormParticipantRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*focus.Participant, error) {
	var participantModels []models.ParticipantModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("joined_at ASC").
		Find(&participantModels).Error; err != nil {
		return nil, err
	}

	participants := make([]*focus.Participant, len(participantModels))
	for i := range participantModels {
		participants[i] = participantModels[i].ToDomain()
	}
	return participants, nil
}

// GormTimeLogRepository implements focus.TimeLogRepository using GORM
type GormTimeLogRepository struct {
	db *gorm.DB
}

// NewGormTimeLogRepository creates a new GormTimeLogRepository
func NewGormTimeLogRepository(db *gorm.DB) *GormTimeLogRepository {
	return &GormTimeLogRepository{db: db}
}

// Save persists a time log
func (r *GormTimeLogRepository) Save(ctx context.Context, log *focus.TimeLog) error {
	model := models.TimeLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindOverlapping finds a user's logs intersecting [windowStart, windowEnd)
func (r *GormTimeLogRepository) FindOverlapping(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID, windowStart, windowEnd time.Time) ([]*focus.TimeLog, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND started_at < ? AND ended_at > ?", userID, windowEnd, windowStart)

	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}

	var logModels []models.TimeLogModel
	if err := query.Order("started_at ASC").Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*focus.TimeLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs, nil
}

// FindByUserID finds a user's logs newest first
func (r *GormTimeLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*focus.TimeLog, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ended_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var logModels []models.TimeLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*focus.TimeLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs, nil
}
