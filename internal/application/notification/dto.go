package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/notification"
)

// ListRequest represents query options for listing a user's notifications
type ListRequest struct {
	Unread bool       `form:"unread"`
	Cursor *uuid.UUID `form:"cursor"`
	Limit  int        `form:"limit" binding:"omitempty,gt=0"`
}

// CreateRequest represents a request to create a notification directly.
// Invites and milestone notifications are produced by their own flows,
// so only reminder and generic kinds may be created here.
type CreateRequest struct {
	UserID  *uuid.UUID `json:"user_id"`
	Kind    string     `json:"kind" binding:"required,oneof=session_reminder generic"`
	Title   string     `json:"title" binding:"required,max=200"`
	Body    string     `json:"body" binding:"max=2000"`
	GroupID *uuid.UUID `json:"group_id"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Kind      string     `json:"kind"`
	Status    string     `json:"status"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListResponse represents a page of notifications with the cursor for
// the next page
type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextCursor    *uuid.UUID             `json:"next_cursor,omitempty"`
	UnreadCount   int64                  `json:"unread_count"`
}

// ToNotificationResponse converts a domain notification to its API representation
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      n.Kind.String(),
		Status:    n.Status.String(),
		Title:     n.Title,
		Body:      n.Body,
		GroupID:   n.GroupID,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
