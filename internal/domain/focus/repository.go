package focus

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository defines the persistence interface for sessions
type SessionRepository interface {
	// Save persists a session (create or update)
	Save(ctx context.Context, session *Session) error

	// SaveWithStatusCheck persists the session only if its stored
	// status still equals expectedStatus. Returns
	// shared.ErrConcurrencyConflict when another writer got there
	// first.
	SaveWithStatusCheck(ctx context.Context, session *Session, expectedStatus SessionStatus) error

	// FindByID retrieves a session by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// FindByGroupID retrieves all sessions of a group, newest first
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*Session, error)

	// FindByUserID retrieves sessions the user participates in,
	// newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*Session, error)
}

// ParticipantRepository defines the persistence interface for session participants
type ParticipantRepository interface {
	// GetOrCreate returns the participant record for (session, user),
	// inserting it when absent. Concurrent calls for the same pair
	// yield the same record.
	GetOrCreate(ctx context.Context, participant *Participant) (*Participant, error)

	// FindBySessionID retrieves all participants of a session
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*Participant, error)
}

// TimeLogRepository defines the persistence interface for time logs
type TimeLogRepository interface {
	// Save persists a time log
	Save(ctx context.Context, log *TimeLog) error

	// FindOverlapping retrieves a user's logs intersecting
	// [windowStart, windowEnd), optionally restricted to a group
	FindOverlapping(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID, windowStart, windowEnd time.Time) ([]*TimeLog, error)

	// FindByUserID retrieves a user's logs newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*TimeLog, error)
}
