package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/shared"
)

// GroupModel is the persistence model for the Group aggregate.
type GroupModel struct {
	AggregateModel
	OwnerID             uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name                string             `gorm:"type:varchar(200);not null"`
	Description         string             `gorm:"type:text"`
	StartAt             time.Time          `gorm:"type:timestamptz;not null"`
	EndAt               time.Time          `gorm:"type:timestamptz;not null;index"`
	Timezone            string             `gorm:"type:varchar(64);not null"`
	Period              circle.GoalPeriod  `gorm:"type:varchar(10);not null"`
	PeriodTargetMinutes int                `gorm:"not null"`
	Status              circle.GroupStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts the persistence model to a domain Group aggregate.
func (m *GroupModel) ToDomain() *circle.Group {
	return &circle.Group{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OwnerID:             m.OwnerID,
		Name:                m.Name,
		Description:         m.Description,
		StartAt:             m.StartAt,
		EndAt:               m.EndAt,
		Timezone:            m.Timezone,
		Period:              m.Period,
		PeriodTargetMinutes: m.PeriodTargetMinutes,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Group aggregate.
func (m *GroupModel) FromDomain(g *circle.Group) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.OwnerID = g.OwnerID
	m.Name = g.Name
	m.Description = g.Description
	m.StartAt = g.StartAt
	m.EndAt = g.EndAt
	m.Timezone = g.Timezone
	m.Period = g.Period
	m.PeriodTargetMinutes = g.PeriodTargetMinutes
	m.Status = g.Status
}

// GroupModelFromDomain creates a new persistence model from a domain Group aggregate.
func GroupModelFromDomain(g *circle.Group) *GroupModel {
	m := &GroupModel{}
	m.FromDomain(g)
	return m
}

// MemberModel is the persistence model for the Member entity.
type MemberModel struct {
	BaseModel
	GroupID                     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_member_group_user,priority:1"`
	UserID                      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_member_group_user,priority:2;index"`
	Role                        circle.MemberRole `gorm:"type:varchar(10);not null;default:'member'"`
	OverridePeriodTargetMinutes *int              `gorm:""`
	JoinedAt                    time.Time         `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "group_members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *MemberModel) ToDomain() *circle.Member {
	return &circle.Member{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		GroupID:                     m.GroupID,
		UserID:                      m.UserID,
		Role:                        m.Role,
		OverridePeriodTargetMinutes: m.OverridePeriodTargetMinutes,
		JoinedAt:                    m.JoinedAt,
	}
}

// FromDomain populates the persistence model from a domain Member entity.
func (m *MemberModel) FromDomain(member *circle.Member) {
	m.FromDomainBaseEntity(member.BaseEntity)
	m.GroupID = member.GroupID
	m.UserID = member.UserID
	m.Role = member.Role
	m.OverridePeriodTargetMinutes = member.OverridePeriodTargetMinutes
	m.JoinedAt = member.JoinedAt
}

// MemberModelFromDomain creates a new persistence model from a domain Member entity.
func MemberModelFromDomain(member *circle.Member) *MemberModel {
	m := &MemberModel{}
	m.FromDomain(member)
	return m
}
