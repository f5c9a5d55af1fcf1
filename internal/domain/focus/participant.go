package focus

import (
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

// ParticipantRole represents a participant's role within a session
type ParticipantRole string

const (
	ParticipantRoleHost        ParticipantRole = "host"
	ParticipantRoleParticipant ParticipantRole = "participant"
)

// IsValid checks if the role is a valid ParticipantRole
func (r ParticipantRole) IsValid() bool {
	return r == ParticipantRoleHost || r == ParticipantRoleParticipant
}

// String returns the string representation of ParticipantRole
func (r ParticipantRole) String() string {
	return string(r)
}

// Participant represents a user taking part in a session. A user
// appears at most once per session.
type Participant struct {
	shared.BaseEntity
	SessionID uuid.UUID
	UserID    uuid.UUID
	Role      ParticipantRole
	JoinedAt  time.Time
}

// NewParticipant creates a new session participant
func NewParticipant(sessionID, userID uuid.UUID, role ParticipantRole) (*Participant, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Participant role must be 'host' or 'participant'")
	}

	return &Participant{
		BaseEntity: shared.NewBaseEntity(),
		SessionID:  sessionID,
		UserID:     userID,
		Role:       role,
		JoinedAt:   time.Now(),
	}, nil
}
