package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/shared"
)

// SessionModel is the persistence model for the Session aggregate.
type SessionModel struct {
	AggregateModel
	GroupID            *uuid.UUID          `gorm:"type:uuid;index"`
	HostUserID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title              string              `gorm:"type:varchar(200);not null"`
	Status             focus.SessionStatus `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	ScheduledAt        time.Time           `gorm:"type:timestamptz;not null"`
	StartedAt          *time.Time          `gorm:"type:timestamptz"`
	EndedAt            *time.Time          `gorm:"type:timestamptz"`
	LastTransitionAt   time.Time           `gorm:"type:timestamptz;not null"`
	RunningSince       *time.Time          `gorm:"type:timestamptz"`
	AccumulatedSeconds int64               `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the persistence model to a domain Session aggregate.
func (m *SessionModel) ToDomain() *focus.Session {
	return &focus.Session{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		GroupID:            m.GroupID,
		HostUserID:         m.HostUserID,
		Title:              m.Title,
		Status:             m.Status,
		ScheduledAt:        m.ScheduledAt,
		StartedAt:          m.StartedAt,
		EndedAt:            m.EndedAt,
		LastTransitionAt:   m.LastTransitionAt,
		RunningSince:       m.RunningSince,
		AccumulatedSeconds: m.AccumulatedSeconds,
	}
}

// FromDomain populates the persistence model from a domain Session aggregate.
func (m *SessionModel) FromDomain(s *focus.Session) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.GroupID = s.GroupID
	m.HostUserID = s.HostUserID
	m.Title = s.Title
	m.Status = s.Status
	m.ScheduledAt = s.ScheduledAt
	m.StartedAt = s.StartedAt
	m.EndedAt = s.EndedAt
	m.LastTransitionAt = s.LastTransitionAt
	m.RunningSince = s.RunningSince
	m.AccumulatedSeconds = s.AccumulatedSeconds
}

// SessionModelFromDomain creates a new persistence model from a domain Session aggregate.
func SessionModelFromDomain(s *focus.Session) *SessionModel {
	m := &SessionModel{}
	m.FromDomain(s)
	return m
}

// ParticipantModel is the persistence model for the Participant entity.
type ParticipantModel struct {
	BaseModel
	SessionID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_participant_session_user,priority:1"`
	UserID    uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_participant_session_user,priority:2;index"`
	Role      focus.ParticipantRole `gorm:"type:varchar(15);not null;default:'participant'"`
	JoinedAt  time.Time             `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (ParticipantModel) TableName() string {
	return "session_participants"
}

// ToDomain converts the persistence model to a domain Participant entity.
func (m *ParticipantModel) ToDomain() *focus.Participant {
	return &focus.Participant{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		SessionID: m.SessionID,
		UserID:    m.UserID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
	}
}

// FromDomain populates the persistence model from a domain Participant entity.
func (m *ParticipantModel) FromDomain(p *focus.Participant) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SessionID = p.SessionID
	m.UserID = p.UserID
	m.Role = p.Role
	m.JoinedAt = p.JoinedAt
}

// ParticipantModelFromDomain creates a new persistence model from a domain Participant entity.
func ParticipantModelFromDomain(p *focus.Participant) *ParticipantModel {
	m := &ParticipantModel{}
	m.FromDomain(p)
	return m
}

// TimeLogModel is the persistence model for the TimeLog entity.
type TimeLogModel struct {
	BaseModel
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index:idx_timelog_user_ended,priority:1"`
	GroupID       *uuid.UUID          `gorm:"type:uuid;index"`
	SessionID     *uuid.UUID          `gorm:"type:uuid;index"`
	ParticipantID *uuid.UUID          `gorm:"type:uuid"`
	StartedAt     time.Time           `gorm:"type:timestamptz;not null"`
	EndedAt       time.Time           `gorm:"type:timestamptz;not null;index:idx_timelog_user_ended,priority:2"`
	Seconds       int64               `gorm:"not null"`
	Source        focus.TimeLogSource `gorm:"type:varchar(10);not null;default:'session'"`
}

// TableName returns the table name for GORM
func (TimeLogModel) TableName() string {
	return "time_logs"
}

// ToDomain converts the persistence model to a domain TimeLog entity.
func (m *TimeLogModel) ToDomain() *focus.TimeLog {
	return &focus.TimeLog{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID:        m.UserID,
		GroupID:       m.GroupID,
		SessionID:     m.SessionID,
		ParticipantID: m.ParticipantID,
		StartedAt:     m.StartedAt,
		EndedAt:       m.EndedAt,
		Seconds:       m.Seconds,
		Source:        m.Source,
	}
}

// FromDomain populates the persistence model from a domain TimeLog entity.
func (m *TimeLogModel) FromDomain(l *focus.TimeLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.UserID = l.UserID
	m.GroupID = l.GroupID
	m.SessionID = l.SessionID
	m.ParticipantID = l.ParticipantID
	m.StartedAt = l.StartedAt
	m.EndedAt = l.EndedAt
	m.Seconds = l.Seconds
	m.Source = l.Source
}

// TimeLogModelFromDomain creates a new persistence model from a domain TimeLog entity.
func TimeLogModelFromDomain(l *focus.TimeLog) *TimeLogModel {
	m := &TimeLogModel{}
	m.FromDomain(l)
	return m
}
