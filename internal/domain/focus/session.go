package focus

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

// SessionStatus represents the status of a focus session
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusRunning   SessionStatus = "running"
	SessionStatusPaused    SessionStatus = "paused"
	SessionStatusEnded     SessionStatus = "ended"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// IsValid checks if the status is a valid SessionStatus
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusRunning, SessionStatusPaused,
		SessionStatusEnded, SessionStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusEnded || s == SessionStatusCancelled
}

// CanTransitionTo checks if a transition to the target status is valid
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	switch s {
	case SessionStatusScheduled:
		return target == SessionStatusRunning || target == SessionStatusCancelled
	case SessionStatusRunning:
		return target == SessionStatusPaused || target == SessionStatusEnded ||
			target == SessionStatusCancelled
	case SessionStatusPaused:
		return target == SessionStatusRunning || target == SessionStatusEnded ||
			target == SessionStatusCancelled
	default:
		return false
	}
}

// Session represents a focus session. Solo sessions have a nil GroupID;
// group sessions count toward their group's goal. Elapsed focus time is
// the sum of all running stretches, pauses excluded.
type Session struct {
	shared.BaseAggregateRoot
	GroupID            *uuid.UUID
	HostUserID         uuid.UUID
	Title              string
	Status             SessionStatus
	ScheduledAt        time.Time
	StartedAt          *time.Time
	EndedAt            *time.Time
	// LastTransitionAt anchors the monotonicity check: every transition
	// timestamp must be >= the previous one.
	LastTransitionAt   time.Time
	// RunningSince is set only while the session is running.
	RunningSince       *time.Time
	AccumulatedSeconds int64
}

// NewSession creates a new scheduled session
func NewSession(groupID *uuid.UUID, hostUserID uuid.UUID, title string, scheduledAt time.Time) (*Session, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Session title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Session title cannot exceed 200 characters")
	}

	session := &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GroupID:           groupID,
		HostUserID:        hostUserID,
		Title:             title,
		Status:            SessionStatusScheduled,
		ScheduledAt:       scheduledAt.UTC(),
		LastTransitionAt:  scheduledAt.UTC(),
	}

	session.AddDomainEvent(NewSessionCreatedEvent(session))

	return session, nil
}

// ApplyTransition moves the session to the target status at the given
// instant. Transition timestamps must be monotonically non-decreasing.
func (s *Session) ApplyTransition(target SessionStatus, at time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown session status: "+target.String())
	}
	if s.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.ErrInvalidTransition
	}

	at = at.UTC()
	if at.Before(s.LastTransitionAt) {
		return shared.ErrNonMonotonicTime
	}

	from := s.Status

	switch target {
	case SessionStatusRunning:
		if s.StartedAt == nil {
			started := at
			s.StartedAt = &started
		}
		since := at
		s.RunningSince = &since
	case SessionStatusPaused:
		s.accumulate(at)
	case SessionStatusEnded:
		s.accumulate(at)
		ended := at
		s.EndedAt = &ended
	case SessionStatusCancelled:
		// cancellation discards the running stretch in progress
		s.RunningSince = nil
		ended := at
		s.EndedAt = &ended
	}

	s.Status = target
	s.LastTransitionAt = at
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSessionStatusChangedEvent(s, from, target))
	if target == SessionStatusEnded {
		s.AddDomainEvent(NewSessionEndedEvent(s))
	}

	return nil
}

func (s *Session) accumulate(at time.Time) {
	if s.RunningSince != nil {
		s.AccumulatedSeconds += int64(at.Sub(*s.RunningSince).Seconds())
		s.RunningSince = nil
	}
}

// ElapsedSeconds returns the total focus time so far, including the
// running stretch in progress when the session is running at now.
func (s *Session) ElapsedSeconds(now time.Time) int64 {
	total := s.AccumulatedSeconds
	if s.RunningSince != nil && now.After(*s.RunningSince) {
		total += int64(now.Sub(*s.RunningSince).Seconds())
	}
	return total
}

// IsSolo reports whether the session belongs to no group
func (s *Session) IsSolo() bool {
	return s.GroupID == nil
}
