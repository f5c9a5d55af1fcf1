package circle

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

// GroupStatus represents the lifecycle status of a group
type GroupStatus string

const (
	GroupStatusPending  GroupStatus = "pending"
	GroupStatusActive   GroupStatus = "active"
	GroupStatusArchived GroupStatus = "archived"
)

// IsValid checks if the status is a valid GroupStatus
func (s GroupStatus) IsValid() bool {
	switch s {
	case GroupStatusPending, GroupStatusActive, GroupStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of GroupStatus
func (s GroupStatus) String() string {
	return string(s)
}

// GoalPeriod represents the recurring cadence of a group's goal
type GoalPeriod string

const (
	GoalPeriodDaily  GoalPeriod = "daily"
	GoalPeriodWeekly GoalPeriod = "weekly"
)

// IsValid checks if the period is a valid GoalPeriod
func (p GoalPeriod) IsValid() bool {
	switch p {
	case GoalPeriodDaily, GoalPeriodWeekly:
		return true
	}
	return false
}

// String returns the string representation of GoalPeriod
func (p GoalPeriod) String() string {
	return string(p)
}

// Group represents a circle of members sharing a recurring time goal
// over a bounded active window. It is the aggregate root for group
// configuration and lifecycle.
type Group struct {
	shared.BaseAggregateRoot
	OwnerID             uuid.UUID
	Name                string
	Description         string
	StartAt             time.Time
	EndAt               time.Time
	Timezone            string
	Period              GoalPeriod
	PeriodTargetMinutes int
	// Status is persisted only so that force-archived and swept groups
	// stay archived. Reads go through StatusAt, which recomputes
	// pending/active from the window.
	Status GroupStatus
}

// NewGroup creates a new group with the given configuration
func NewGroup(ownerID uuid.UUID, name, description string, startAt, endAt time.Time, timezone string, period GoalPeriod, targetMinutes int) (*Group, error) {
	if err := validateGroupName(name); err != nil {
		return nil, err
	}
	if !startAt.Before(endAt) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Group end_at must be after start_at")
	}
	if err := validateTimezone(timezone); err != nil {
		return nil, err
	}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Goal period must be 'daily' or 'weekly'")
	}
	if targetMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_TARGET", "Period target minutes must be positive")
	}

	group := &Group{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		OwnerID:             ownerID,
		Name:                name,
		Description:         description,
		StartAt:             startAt.UTC(),
		EndAt:               endAt.UTC(),
		Timezone:            timezone,
		Period:              period,
		PeriodTargetMinutes: targetMinutes,
		Status:              GroupStatusActive,
	}

	group.AddDomainEvent(NewGroupCreatedEvent(group))

	return group, nil
}

// StatusAt derives the group's lifecycle status at the given instant.
// The persisted archived flag always wins; pending/active follow the
// window boundaries.
func (g *Group) StatusAt(now time.Time) GroupStatus {
	if g.Status == GroupStatusArchived {
		return GroupStatusArchived
	}
	return StatusOf(g.StartAt, g.EndAt, now)
}

// StatusOf computes lifecycle status purely from the window boundaries
func StatusOf(startAt, endAt, now time.Time) GroupStatus {
	switch {
	case now.Before(startAt):
		return GroupStatusPending
	case !now.Before(endAt):
		return GroupStatusArchived
	default:
		return GroupStatusActive
	}
}

// Update updates the group's name and description
func (g *Group) Update(name, description string) error {
	if err := validateGroupName(name); err != nil {
		return err
	}

	g.Name = name
	g.Description = description
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// Archive force-archives the group. Archiving an already archived group
// is a no-op, not an error.
func (g *Group) Archive(now time.Time) bool {
	if g.Status == GroupStatusArchived {
		return false
	}

	g.Status = GroupStatusArchived
	g.UpdatedAt = now
	g.IncrementVersion()

	g.AddDomainEvent(NewGroupArchivedEvent(g))

	return true
}

// IsExpired returns true if the group's window has ended at the given instant
func (g *Group) IsExpired(now time.Time) bool {
	return !now.Before(g.EndAt)
}

// CurrentWindow returns the group's goal window containing the given instant
func (g *Group) CurrentWindow(now time.Time) (Window, error) {
	return PeriodWindow(g.Timezone, g.Period, now)
}

func validateGroupName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Group name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Group name cannot exceed 200 characters")
	}
	return nil
}

func validateTimezone(timezone string) error {
	if timezone == "" {
		return shared.NewDomainError("INVALID_TIMEZONE", "Timezone cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return shared.NewDomainError("INVALID_TIMEZONE", "Unknown IANA timezone: "+timezone)
	}
	return nil
}
