package circle

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

// MemberRole represents a member's role inside a group
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// IsValid checks if the role is a valid MemberRole
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

// String returns the string representation of MemberRole
func (r MemberRole) String() string {
	return string(r)
}

// CanManageMembers reports whether the role may add or remove other members
func (r MemberRole) CanManageMembers() bool {
	return r == MemberRoleOwner || r == MemberRoleAdmin
}

// Member represents a user's membership in a group. A user appears at
// most once per group; the optional target override replaces the
// group-level period target for that member only.
type Member struct {
	shared.BaseEntity
	GroupID                     uuid.UUID
	UserID                      uuid.UUID
	Role                        MemberRole
	OverridePeriodTargetMinutes *int
	JoinedAt                    time.Time
}

// NewMember creates a new membership record
func NewMember(groupID, userID uuid.UUID, role MemberRole) (*Member, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Member role must be 'owner', 'admin' or 'member'")
	}

	return &Member{
		BaseEntity: shared.NewBaseEntity(),
		GroupID:    groupID,
		UserID:     userID,
		Role:       role,
		JoinedAt:   time.Now(),
	}, nil
}

// TargetMinutes returns the member's effective per-period target,
// falling back to the group default when no override is set.
func (m *Member) TargetMinutes(groupDefault int) int {
	if m.OverridePeriodTargetMinutes != nil {
		return *m.OverridePeriodTargetMinutes
	}
	return groupDefault
}

// SetTargetOverride sets or clears the member's personal target override
func (m *Member) SetTargetOverride(minutes *int) error {
	if minutes != nil && *minutes <= 0 {
		return shared.NewDomainError("INVALID_TARGET", "Target override minutes must be positive")
	}

	m.OverridePeriodTargetMinutes = minutes
	m.UpdatedAt = time.Now()

	return nil
}

// ChangeRole updates the member's role
func (m *Member) ChangeRole(role MemberRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Member role must be 'owner', 'admin' or 'member'")
	}
	if m.Role == MemberRoleOwner && role != MemberRoleOwner {
		return shared.NewDomainError("FORBIDDEN", "Group owner role cannot be changed")
	}

	m.Role = role
	m.UpdatedAt = time.Now()

	return nil
}
