package notification

import (
	"context"

	"github.com/google/uuid"
)

// ListOptions controls pagination when listing a user's notifications
type ListOptions struct {
	// UnreadOnly restricts the listing to pending notifications
	UnreadOnly bool
	// Cursor is the ID of the last notification from the previous
	// page; zero value starts from the newest
	Cursor *uuid.UUID
	// Limit caps the page size
	Limit int
}

// Repository defines the persistence interface for notifications
type Repository interface {
	// Save persists a notification (create or update)
	Save(ctx context.Context, n *Notification) error

	// CreateDedup inserts the notification unless one with the same
	// dedup key already exists. Returns true when the row was
	// inserted.
	CreateDedup(ctx context.Context, n *Notification) (bool, error)

	// FindByID retrieves a notification by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUserID retrieves a page of the user's notifications,
	// newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]*Notification, error)

	// CountUnread returns the number of pending notifications for the user
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
