package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NotificationService handles notification listing and resolution
type NotificationService struct {
	notificationRepo notification.Repository
	groupRepo        circle.GroupRepository
	memberRepo       circle.MemberRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo notification.Repository,
	groupRepo circle.GroupRepository,
	memberRepo circle.MemberRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		groupRepo:        groupRepo,
		memberRepo:       memberRepo,
	}
}

// Create stores a reminder or generic notification. The recipient
// defaults to the caller; notifying someone else requires sharing a
// group with them.
func (s *NotificationService) Create(ctx context.Context, callerID uuid.UUID, req *CreateRequest) (*NotificationResponse, error) {
	recipientID := callerID
	if req.UserID != nil {
		recipientID = *req.UserID
	}

	if recipientID != callerID {
		if req.GroupID == nil {
			return nil, shared.NewDomainError("FORBIDDEN", "Notifying another user requires a shared group")
		}
		if _, err := s.memberRepo.Find(ctx, *req.GroupID, callerID); err != nil {
			return nil, shared.NewDomainError("FORBIDDEN", "Notifying another user requires a shared group")
		}
		if _, err := s.memberRepo.Find(ctx, *req.GroupID, recipientID); err != nil {
			return nil, shared.NewDomainError("FORBIDDEN", "Notifying another user requires a shared group")
		}
	}

	n, err := notification.New(recipientID, notification.Kind(req.Kind), req.Title, req.Body, req.GroupID, nil)
	if err != nil {
		return nil, err
	}
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}

	resp := ToNotificationResponse(n)
	return &resp, nil
}

// List returns a page of the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, req *ListRequest) (*ListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, err := s.notificationRepo.FindByUserID(ctx, userID, notification.ListOptions{
		UnreadOnly: req.Unread,
		Cursor:     req.Cursor,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{
		Notifications: make([]NotificationResponse, 0, len(items)),
		UnreadCount:   unread,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, ToNotificationResponse(n))
	}
	if len(items) == limit {
		last := items[len(items)-1].ID
		resp.NextCursor = &last
	}
	return resp, nil
}

// Get returns a notification. Only the recipient may view it.
func (s *NotificationService) Get(ctx context.Context, notificationID, userID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// MarkRead marks a notification as read. Re-reading is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}

	if n.MarkRead() {
		if err := s.notificationRepo.Save(ctx, n); err != nil {
			return nil, err
		}
	}

	resp := ToNotificationResponse(n)
	return &resp, nil
}

// Accept accepts a group invite: the recipient joins the group and the
// invite resolves to accepted. Accepting an invite to a vanished group
// fails with NOT_FOUND; joining a group the user already belongs to is
// a no-op.
func (s *NotificationService) Accept(ctx context.Context, notificationID, userID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}

	if err := n.Accept(); err != nil {
		return nil, err
	}

	if n.GroupID == nil {
		return nil, shared.ErrNotFound
	}
	group, err := s.groupRepo.FindByID(ctx, *n.GroupID)
	if err != nil {
		return nil, err
	}
	if group.StatusAt(time.Now().UTC()) == circle.GroupStatusArchived {
		return nil, shared.NewDomainError("GROUP_ARCHIVED", "The group this invite refers to has been archived")
	}

	member, err := circle.NewMember(group.ID, userID, circle.MemberRoleMember)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, err
	}

	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}

	resp := ToNotificationResponse(n)
	return &resp, nil
}

// Decline declines a group invite
func (s *NotificationService) Decline(ctx context.Context, notificationID, userID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}

	if err := n.Decline(); err != nil {
		return nil, err
	}
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}

	resp := ToNotificationResponse(n)
	return &resp, nil
}

// findOwned loads a notification and checks the caller is its recipient
func (s *NotificationService) findOwned(ctx context.Context, notificationID, userID uuid.UUID) (*notification.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		// do not reveal other users' notifications
		return nil, shared.ErrNotFound
	}
	return n, nil
}
