package circle

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GroupRepository defines the persistence interface for groups
type GroupRepository interface {
	// Save persists a group (create or update)
	Save(ctx context.Context, group *Group) error

	// SaveWithLock persists a group using optimistic locking
	SaveWithLock(ctx context.Context, group *Group, expectedVersion int) error

	// FindByID retrieves a group by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)

	// FindByUserID retrieves all groups the user is a member of,
	// optionally filtered by derived status
	FindByUserID(ctx context.Context, userID uuid.UUID, status *GroupStatus, now time.Time) ([]*Group, error)

	// ArchiveExpired marks every non-archived group whose window has
	// ended as archived and returns the number of groups affected
	ArchiveExpired(ctx context.Context, now time.Time) (int64, error)

	// Delete removes a group
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemberRepository defines the persistence interface for group memberships
type MemberRepository interface {
	// Add inserts a membership; adding an existing (group, user) pair
	// is a no-op and returns the existing record
	Add(ctx context.Context, member *Member) (*Member, error)

	// Save persists changes to an existing membership
	Save(ctx context.Context, member *Member) error

	// Find retrieves the membership for a (group, user) pair
	Find(ctx context.Context, groupID, userID uuid.UUID) (*Member, error)

	// FindByGroupID retrieves all members of a group
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*Member, error)

	// Remove deletes the membership for a (group, user) pair
	Remove(ctx context.Context, groupID, userID uuid.UUID) error
}
