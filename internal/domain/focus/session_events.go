package focus

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

const (
	AggregateTypeSession = "Session"

	EventTypeSessionCreated       = "session.created"
	EventTypeSessionStatusChanged = "session.status_changed"
	EventTypeSessionEnded         = "session.ended"
	EventTypeTimeLogRecorded      = "session.time_log_recorded"
)

// SessionCreatedEvent is emitted when a new session is scheduled
type SessionCreatedEvent struct {
	shared.BaseDomainEvent
	GroupID    *uuid.UUID `json:"group_id,omitempty"`
	HostUserID uuid.UUID  `json:"host_user_id"`
	Title      string     `json:"title"`
}

// NewSessionCreatedEvent creates a new SessionCreatedEvent
func NewSessionCreatedEvent(session *Session) *SessionCreatedEvent {
	return &SessionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionCreated, session.ID, AggregateTypeSession),
		GroupID:         session.GroupID,
		HostUserID:      session.HostUserID,
		Title:           session.Title,
	}
}

// SessionStatusChangedEvent is emitted on every session transition
type SessionStatusChangedEvent struct {
	shared.BaseDomainEvent
	From SessionStatus `json:"from"`
	To   SessionStatus `json:"to"`
}

// NewSessionStatusChangedEvent creates a new SessionStatusChangedEvent
func NewSessionStatusChangedEvent(session *Session, from, to SessionStatus) *SessionStatusChangedEvent {
	return &SessionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionStatusChanged, session.ID, AggregateTypeSession),
		From:            from,
		To:              to,
	}
}

// SessionEndedEvent is emitted when a session reaches the ended status
type SessionEndedEvent struct {
	shared.BaseDomainEvent
	GroupID        *uuid.UUID `json:"group_id,omitempty"`
	HostUserID     uuid.UUID  `json:"host_user_id"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
}

// NewSessionEndedEvent creates a new SessionEndedEvent
func NewSessionEndedEvent(session *Session) *SessionEndedEvent {
	return &SessionEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionEnded, session.ID, AggregateTypeSession),
		GroupID:         session.GroupID,
		HostUserID:      session.HostUserID,
		ElapsedSeconds:  session.AccumulatedSeconds,
	}
}

// TimeLogRecordedEvent is emitted whenever a time log is persisted.
// Milestone checks hang off this event.
type TimeLogRecordedEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID  `json:"user_id"`
	GroupID    *uuid.UUID `json:"group_id,omitempty"`
	Seconds    int64      `json:"seconds"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// NewTimeLogRecordedEvent creates a new TimeLogRecordedEvent
func NewTimeLogRecordedEvent(log *TimeLog) *TimeLogRecordedEvent {
	return &TimeLogRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTimeLogRecorded, log.ID, AggregateTypeSession),
		UserID:          log.UserID,
		GroupID:         log.GroupID,
		Seconds:         log.Seconds,
		RecordedAt:      log.EndedAt,
	}
}
