package circle

import (
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
)

// CreateGroupRequest represents a request to create a new group
type CreateGroupRequest struct {
	Name                string    `json:"name" binding:"required,min=1,max=200"`
	Description         string    `json:"description" binding:"max=2000"`
	StartAt             time.Time `json:"start_at" binding:"required"`
	EndAt               time.Time `json:"end_at" binding:"required"`
	Timezone            string    `json:"timezone" binding:"required,timezone"`
	Period              string    `json:"period" binding:"required,oneof=daily weekly"`
	PeriodTargetMinutes int       `json:"period_target_minutes" binding:"required,gt=0"`
}

// UpdateGroupRequest represents a request to update a group's name or description
type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// AddMemberRequest represents a request to add a member directly
type AddMemberRequest struct {
	UserID                      uuid.UUID `json:"user_id" binding:"required"`
	Role                        string    `json:"role" binding:"omitempty,oneof=admin member"`
	OverridePeriodTargetMinutes *int      `json:"override_period_target_minutes" binding:"omitempty,gt=0"`
}

// UpdateMemberRequest represents a request to change a member's role or target override
type UpdateMemberRequest struct {
	Role                        *string `json:"role" binding:"omitempty,oneof=admin member"`
	OverridePeriodTargetMinutes *int    `json:"override_period_target_minutes" binding:"omitempty,gt=0"`
	ClearOverride               bool    `json:"clear_override"`
}

// InviteRequest represents a request to invite a user to a group
type InviteRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	StartAt             time.Time `json:"start_at"`
	EndAt               time.Time `json:"end_at"`
	Timezone            string    `json:"timezone"`
	Period              string    `json:"period"`
	PeriodTargetMinutes int       `json:"period_target_minutes"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// MemberResponse represents a group member in API responses
type MemberResponse struct {
	UserID                      uuid.UUID `json:"user_id"`
	Role                        string    `json:"role"`
	OverridePeriodTargetMinutes *int      `json:"override_period_target_minutes,omitempty"`
	TargetMinutes               int       `json:"target_minutes"`
	JoinedAt                    time.Time `json:"joined_at"`
}

// GroupSessionResponse represents a group's session in the group detail view
type GroupSessionResponse struct {
	ID                 uuid.UUID  `json:"id"`
	HostUserID         uuid.UUID  `json:"host_user_id"`
	Title              string     `json:"title"`
	Status             string     `json:"status"`
	ScheduledAt        time.Time  `json:"scheduled_at"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	AccumulatedSeconds int64      `json:"accumulated_seconds"`
}

// GroupDetailResponse represents a group with its members and sessions
type GroupDetailResponse struct {
	GroupResponse
	Members  []MemberResponse       `json:"members"`
	Sessions []GroupSessionResponse `json:"sessions"`
}

// GroupProgressRow represents one member's progress inside the current goal window
type GroupProgressRow struct {
	UserID        uuid.UUID `json:"user_id"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	SecondsDone   int64     `json:"seconds_done"`
	TargetMinutes int       `json:"target_minutes"`
	GoalMet       bool      `json:"goal_met"`
}

// ProgressResponse represents group progress for the current goal window
type ProgressResponse struct {
	GroupID           uuid.UUID          `json:"group_id"`
	PeriodStart       time.Time          `json:"period_start"`
	PeriodEnd         time.Time          `json:"period_end"`
	Rows              []GroupProgressRow `json:"rows"`
	TeamSecondsDone   int64              `json:"team_seconds_done"`
	TeamTargetMinutes int                `json:"team_target_minutes"`
	TeamGoalMet       bool               `json:"team_goal_met"`
}

// ToGroupResponse converts a domain group to its API representation.
// The status is derived at the given instant.
func ToGroupResponse(g *circle.Group, now time.Time) GroupResponse {
	return GroupResponse{
		ID:                  g.ID,
		OwnerID:             g.OwnerID,
		Name:                g.Name,
		Description:         g.Description,
		StartAt:             g.StartAt,
		EndAt:               g.EndAt,
		Timezone:            g.Timezone,
		Period:              g.Period.String(),
		PeriodTargetMinutes: g.PeriodTargetMinutes,
		Status:              g.StatusAt(now).String(),
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

// ToGroupSessionResponse converts a domain session to its group-detail representation
func ToGroupSessionResponse(s *focus.Session) GroupSessionResponse {
	return GroupSessionResponse{
		ID:                 s.ID,
		HostUserID:         s.HostUserID,
		Title:              s.Title,
		Status:             s.Status.String(),
		ScheduledAt:        s.ScheduledAt,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		AccumulatedSeconds: s.AccumulatedSeconds,
	}
}

// ToMemberResponse converts a domain member to its API representation
func ToMemberResponse(m *circle.Member, groupDefault int) MemberResponse {
	return MemberResponse{
		UserID:                      m.UserID,
		Role:                        m.Role.String(),
		OverridePeriodTargetMinutes: m.OverridePeriodTargetMinutes,
		TargetMinutes:               m.TargetMinutes(groupDefault),
		JoinedAt:                    m.JoinedAt,
	}
}
