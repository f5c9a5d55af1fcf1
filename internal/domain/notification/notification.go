package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lockin/backend/internal/domain/shared"
)

// Kind represents the kind of notification
type Kind string

const (
	KindGroupInvite     Kind = "group_invite"
	KindMilestoneMember Kind = "milestone_member"
	KindMilestoneGroup  Kind = "milestone_group"
	KindSessionReminder Kind = "session_reminder"
	KindGeneric         Kind = "generic"
)

// IsValid checks if the kind is a valid Kind
func (k Kind) IsValid() bool {
	switch k {
	case KindGroupInvite, KindMilestoneMember, KindMilestoneGroup,
		KindSessionReminder, KindGeneric:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// IsActionable reports whether the kind supports accept/decline
func (k Kind) IsActionable() bool {
	return k == KindGroupInvite
}

// Status represents the resolution status of a notification
type Status string

const (
	StatusPending  Status = "pending"
	StatusRead     Status = "read"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRead, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsResolved reports whether the notification has been accepted or declined
func (s Status) IsResolved() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Notification represents a message delivered to one user. Invites are
// actionable; milestone notifications carry a dedup key so each
// milestone fires at most once per goal window.
type Notification struct {
	shared.BaseEntity
	UserID   uuid.UUID
	Kind     Kind
	Status   Status
	Title    string
	Body     string
	GroupID  *uuid.UUID
	DedupKey *string
	ReadAt   *time.Time
}

// New creates a new pending notification
func New(userID uuid.UUID, kind Kind, title, body string, groupID *uuid.UUID, dedupKey *string) (*Notification, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown notification kind: "+kind.String())
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Kind:       kind,
		Status:     StatusPending,
		Title:      title,
		Body:       body,
		GroupID:    groupID,
		DedupKey:   dedupKey,
	}, nil
}

// MarkRead marks a pending notification as read. Reading an already
// read or resolved notification is a no-op.
func (n *Notification) MarkRead() bool {
	if n.Status != StatusPending {
		return false
	}
	now := time.Now()
	n.Status = StatusRead
	n.ReadAt = &now
	n.UpdatedAt = now
	return true
}

// Accept resolves an actionable notification positively
func (n *Notification) Accept() error {
	return n.resolve(StatusAccepted)
}

// Decline resolves an actionable notification negatively
func (n *Notification) Decline() error {
	return n.resolve(StatusDeclined)
}

func (n *Notification) resolve(target Status) error {
	if !n.Kind.IsActionable() {
		return shared.NewDomainError("NOT_ACTIONABLE", "Notification kind does not support accept/decline")
	}
	if n.Status.IsResolved() {
		return shared.ErrAlreadyResolved
	}
	n.Status = target
	n.UpdatedAt = time.Now()
	return nil
}

// MemberMilestoneKey builds the dedup key for a member reaching the
// group target within a goal window
func MemberMilestoneKey(groupID, userID uuid.UUID, windowStart time.Time) string {
	return fmt.Sprintf("milestone_member:%s:%s:%d", groupID, userID, windowStart.UTC().Unix())
}

// GroupMilestoneKey builds the dedup key for a whole group reaching
// its combined target within a goal window. The recipient is part of
// the key so every member gets their own copy.
func GroupMilestoneKey(groupID, recipientID uuid.UUID, windowStart time.Time) string {
	return fmt.Sprintf("milestone_group:%s:%s:%d", groupID, recipientID, windowStart.UTC().Unix())
}
