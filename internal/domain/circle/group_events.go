package circle

import (
	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

const (
	AggregateTypeGroup = "Group"

	EventTypeGroupCreated  = "group.created"
	EventTypeGroupArchived = "group.archived"
	EventTypeMemberAdded   = "group.member_added"
	EventTypeMemberRemoved = "group.member_removed"
)

// GroupCreatedEvent is emitted when a new group is created
type GroupCreatedEvent struct {
	shared.BaseDomainEvent
	OwnerID uuid.UUID  `json:"owner_id"`
	Name    string     `json:"name"`
	Period  GoalPeriod `json:"period"`
}

// NewGroupCreatedEvent creates a new GroupCreatedEvent
func NewGroupCreatedEvent(group *Group) *GroupCreatedEvent {
	return &GroupCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroupCreated, group.ID, AggregateTypeGroup),
		OwnerID:         group.OwnerID,
		Name:            group.Name,
		Period:          group.Period,
	}
}

// GroupArchivedEvent is emitted when a group is archived
type GroupArchivedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewGroupArchivedEvent creates a new GroupArchivedEvent
func NewGroupArchivedEvent(group *Group) *GroupArchivedEvent {
	return &GroupArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroupArchived, group.ID, AggregateTypeGroup),
		Name:            group.Name,
	}
}

// MemberAddedEvent is emitted when a user joins a group
type MemberAddedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID  `json:"user_id"`
	Role   MemberRole `json:"role"`
}

// NewMemberAddedEvent creates a new MemberAddedEvent
func NewMemberAddedEvent(groupID uuid.UUID, member *Member) *MemberAddedEvent {
	return &MemberAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberAdded, groupID, AggregateTypeGroup),
		UserID:          member.UserID,
		Role:            member.Role,
	}
}

// MemberRemovedEvent is emitted when a user leaves or is removed from a group
type MemberRemovedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewMemberRemovedEvent creates a new MemberRemovedEvent
func NewMemberRemovedEvent(groupID, userID uuid.UUID) *MemberRemovedEvent {
	return &MemberRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberRemoved, groupID, AggregateTypeGroup),
		UserID:          userID,
	}
}
