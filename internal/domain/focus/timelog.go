package focus

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

// TimeLogSource distinguishes how a time log came to exist
type TimeLogSource string

const (
	TimeLogSourceSession TimeLogSource = "session"
	TimeLogSourceManual  TimeLogSource = "manual"
)

// String returns the string representation of TimeLogSource
func (s TimeLogSource) String() string {
	return string(s)
}

// TimeLog is an immutable record of focus time for one user. Session
// logs are written when a session ends; manual logs are entered
// directly. The interval is half-open UTC [StartedAt, EndedAt).
type TimeLog struct {
	shared.BaseEntity
	UserID        uuid.UUID
	GroupID       *uuid.UUID
	SessionID     *uuid.UUID
	ParticipantID *uuid.UUID
	StartedAt     time.Time
	EndedAt       time.Time
	Seconds       int64
	Source        TimeLogSource
}

// NewTimeLog creates a time log for the given interval
func NewTimeLog(userID uuid.UUID, groupID, sessionID, participantID *uuid.UUID, startedAt, endedAt time.Time, source TimeLogSource) (*TimeLog, error) {
	startedAt = startedAt.UTC()
	endedAt = endedAt.UTC()

	if !startedAt.Before(endedAt) {
		return nil, shared.ErrInvalidRange
	}

	return &TimeLog{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		GroupID:       groupID,
		SessionID:     sessionID,
		ParticipantID: participantID,
		StartedAt:     startedAt,
		EndedAt:       endedAt,
		Seconds:       int64(endedAt.Sub(startedAt).Seconds()),
		Source:        source,
	}, nil
}
