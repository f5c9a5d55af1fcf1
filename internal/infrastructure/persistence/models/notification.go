package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
)

// NotificationModel is the persistence model for the Notification entity.
type NotificationModel struct {
	BaseModel
	UserID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_notification_user_created,priority:1"`
	Kind     notification.Kind   `gorm:"type:varchar(20);not null"`
	Status   notification.Status `gorm:"type:varchar(10);not null;default:'pending';index"`
	Title    string              `gorm:"type:varchar(200);not null"`
	Body     string              `gorm:"type:text"`
	GroupID  *uuid.UUID          `gorm:"type:uuid;index"`
	DedupKey *string             `gorm:"type:varchar(200);uniqueIndex:idx_notification_dedup_key"`
	ReadAt   *time.Time          `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID:   m.UserID,
		Kind:     m.Kind,
		Status:   m.Status,
		Title:    m.Title,
		Body:     m.Body,
		GroupID:  m.GroupID,
		DedupKey: m.DedupKey,
		ReadAt:   m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.Kind = n.Kind
	m.Status = n.Status
	m.Title = n.Title
	m.Body = n.Body
	m.GroupID = n.GroupID
	m.DedupKey = n.DedupKey
	m.ReadAt = n.ReadAt
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
