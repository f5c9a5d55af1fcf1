package focus

import (
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/focus"
)

// CreateSessionRequest represents a request to create a focus session.
// GroupID is omitted for solo sessions; ScheduledStart defaults to now.
type CreateSessionRequest struct {
	GroupID        *uuid.UUID `json:"group_id"`
	Title          string     `json:"title" binding:"omitempty,max=200"`
	ScheduledStart *time.Time `json:"scheduled_start"`
}

// UpdateStatusRequest represents a request to move a session to a new
// status. Timestamp defaults to now and must not precede the session's
// last recorded transition.
type UpdateStatusRequest struct {
	Status    string     `json:"status" binding:"required,oneof=running paused ended cancelled"`
	Timestamp *time.Time `json:"timestamp"`
}

// AddTimeLogRequest represents a request to record a client-measured
// focus interval against a session
type AddTimeLogRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	StartedAt time.Time `json:"started_at" binding:"required"`
	EndedAt   time.Time `json:"ended_at" binding:"required"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID                 uuid.UUID  `json:"id"`
	GroupID            *uuid.UUID `json:"group_id,omitempty"`
	HostUserID         uuid.UUID  `json:"host_user_id"`
	Title              string     `json:"title"`
	Status             string     `json:"status"`
	ScheduledAt        time.Time  `json:"scheduled_at"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	AccumulatedSeconds int64      `json:"accumulated_seconds"`
	ElapsedSeconds     int64      `json:"elapsed_seconds"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ParticipantResponse represents a session participant in API responses
type ParticipantResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// SessionDetailResponse represents a session with its participants
type SessionDetailResponse struct {
	SessionResponse
	Participants []ParticipantResponse `json:"participants"`
}

// TimeLogResponse represents a time log in API responses
type TimeLogResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
	Seconds   int64      `json:"seconds"`
	Source    string     `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToSessionResponse converts a domain session to its API representation
func ToSessionResponse(s *focus.Session, now time.Time) SessionResponse {
	return SessionResponse{
		ID:                 s.ID,
		GroupID:            s.GroupID,
		HostUserID:         s.HostUserID,
		Title:              s.Title,
		Status:             s.Status.String(),
		ScheduledAt:        s.ScheduledAt,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		AccumulatedSeconds: s.AccumulatedSeconds,
		ElapsedSeconds:     s.ElapsedSeconds(now),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToParticipantResponse converts a domain participant to its API representation
func ToParticipantResponse(p *focus.Participant) ParticipantResponse {
	return ParticipantResponse{
		UserID:   p.UserID,
		Role:     p.Role.String(),
		JoinedAt: p.JoinedAt,
	}
}

// ToTimeLogResponse converts a domain time log to its API representation
func ToTimeLogResponse(l *focus.TimeLog) TimeLogResponse {
	return TimeLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		GroupID:   l.GroupID,
		SessionID: l.SessionID,
		StartedAt: l.StartedAt,
		EndedAt:   l.EndedAt,
		Seconds:   l.Seconds,
		Source:    l.Source.String(),
		CreatedAt: l.CreatedAt,
	}
}
