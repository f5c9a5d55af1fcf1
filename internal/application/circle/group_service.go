package circle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
)

// GroupService handles group lifecycle and membership operations
type GroupService struct {
	groupRepo        circle.GroupRepository
	memberRepo       circle.MemberRepository
	sessionRepo      focus.SessionRepository
	notificationRepo notification.Repository
	eventPublisher   shared.EventPublisher
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groupRepo circle.GroupRepository,
	memberRepo circle.MemberRepository,
	sessionRepo focus.SessionRepository,
	notificationRepo notification.Repository,
) *GroupService {
	return &GroupService{
		groupRepo:        groupRepo,
		memberRepo:       memberRepo,
		sessionRepo:      sessionRepo,
		notificationRepo: notificationRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *GroupService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new group and enrolls the creator as its owner
func (s *GroupService) Create(ctx context.Context, ownerID uuid.UUID, req *CreateGroupRequest) (*GroupDetailResponse, error) {
	group, err := circle.NewGroup(
		ownerID,
		req.Name,
		req.Description,
		req.StartAt,
		req.EndAt,
		req.Timezone,
		circle.GoalPeriod(req.Period),
		req.PeriodTargetMinutes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	owner, err := circle.NewMember(group.ID, ownerID, circle.MemberRoleOwner)
	if err != nil {
		return nil, err
	}
	owner, err = s.memberRepo.Add(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, group)

	now := time.Now().UTC()
	return &GroupDetailResponse{
		GroupResponse: ToGroupResponse(group, now),
		Members:       []MemberResponse{ToMemberResponse(owner, group.PeriodTargetMinutes)},
		Sessions:      []GroupSessionResponse{},
	}, nil
}

// List returns all groups the user belongs to, optionally filtered by
// derived lifecycle status
func (s *GroupService) List(ctx context.Context, userID uuid.UUID, statusFilter string) ([]GroupResponse, error) {
	now := time.Now().UTC()

	var status *circle.GroupStatus
	if statusFilter != "" {
		st := circle.GroupStatus(statusFilter)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown group status: "+statusFilter)
		}
		status = &st
	}

	groups, err := s.groupRepo.FindByUserID(ctx, userID, status, now)
	if err != nil {
		return nil, err
	}

	responses := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, ToGroupResponse(g, now))
	}
	return responses, nil
}

// Get returns a group together with its member list. Only members may
// view a group.
func (s *GroupService) Get(ctx context.Context, groupID, userID uuid.UUID) (*GroupDetailResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp := &GroupDetailResponse{
		GroupResponse: ToGroupResponse(group, now),
		Members:       make([]MemberResponse, 0, len(members)),
		Sessions:      make([]GroupSessionResponse, 0, len(sessions)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, ToMemberResponse(m, group.PeriodTargetMinutes))
	}
	for _, sess := range sessions {
		resp.Sessions = append(resp.Sessions, ToGroupSessionResponse(sess))
	}
	return resp, nil
}

// ListMembers returns the group roster. Only members may view it.
func (s *GroupService) ListMembers(ctx context.Context, groupID, userID uuid.UUID) ([]MemberResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	resp := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, ToMemberResponse(m, group.PeriodTargetMinutes))
	}
	return resp, nil
}

// Update changes a group's name or description. Requires the owner or
// an admin.
func (s *GroupService) Update(ctx context.Context, groupID, userID uuid.UUID, req *UpdateGroupRequest) (*GroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.requireManager(ctx, groupID, userID); err != nil {
		return nil, err
	}
	if group.StatusAt(time.Now().UTC()) == circle.GroupStatusArchived {
		return nil, shared.NewDomainError("GROUP_ARCHIVED", "Archived groups cannot be modified")
	}

	name := group.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := group.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := group.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.groupRepo.SaveWithLock(ctx, group, group.Version-1); err != nil {
		return nil, err
	}

	resp := ToGroupResponse(group, time.Now().UTC())
	return &resp, nil
}

// Archive force-archives a group ahead of its end time. Only the owner
// may archive; archiving an already archived group is a no-op.
func (s *GroupService) Archive(ctx context.Context, groupID, userID uuid.UUID) (*GroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if group.OwnerID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the group owner can archive the group")
	}

	now := time.Now().UTC()
	if group.Archive(now) {
		if err := s.groupRepo.SaveWithLock(ctx, group, group.Version-1); err != nil {
			return nil, err
		}
		s.publishDomainEvents(ctx, group)
	}

	resp := ToGroupResponse(group, now)
	return &resp, nil
}

// AddMember adds a user to the group directly. Requires the owner or
// an admin; adding an existing member is a no-op.
func (s *GroupService) AddMember(ctx context.Context, groupID, actorID uuid.UUID, req *AddMemberRequest) (*MemberResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, groupID, actorID); err != nil {
		return nil, err
	}
	if group.StatusAt(time.Now().UTC()) == circle.GroupStatusArchived {
		return nil, shared.NewDomainError("GROUP_ARCHIVED", "Cannot add members to an archived group")
	}

	role := circle.MemberRoleMember
	if req.Role != "" {
		role = circle.MemberRole(req.Role)
	}
	member, err := circle.NewMember(groupID, req.UserID, role)
	if err != nil {
		return nil, err
	}
	if req.OverridePeriodTargetMinutes != nil {
		if err := member.SetTargetOverride(req.OverridePeriodTargetMinutes); err != nil {
			return nil, err
		}
	}

	member, err = s.memberRepo.Add(ctx, member)
	if err != nil {
		return nil, err
	}

	resp := ToMemberResponse(member, group.PeriodTargetMinutes)
	return &resp, nil
}

// UpdateMember changes a member's role or per-period target override.
// Role changes require a manager; members may adjust their own
// override.
func (s *GroupService) UpdateMember(ctx context.Context, groupID, actorID, targetUserID uuid.UUID, req *UpdateMemberRequest) (*MemberResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.Find(ctx, groupID, targetUserID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if err := s.requireManager(ctx, groupID, actorID); err != nil {
			return nil, err
		}
		if err := member.ChangeRole(circle.MemberRole(*req.Role)); err != nil {
			return nil, err
		}
	}

	if req.OverridePeriodTargetMinutes != nil || req.ClearOverride {
		if actorID != targetUserID {
			if err := s.requireManager(ctx, groupID, actorID); err != nil {
				return nil, err
			}
		}
		override := req.OverridePeriodTargetMinutes
		if req.ClearOverride {
			override = nil
		}
		if err := member.SetTargetOverride(override); err != nil {
			return nil, err
		}
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	resp := ToMemberResponse(member, group.PeriodTargetMinutes)
	return &resp, nil
}

// RemoveMember removes a user from the group. Managers may remove
// others; any member may leave. The owner cannot be removed.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, actorID, targetUserID uuid.UUID) error {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == targetUserID {
		return shared.NewDomainError("FORBIDDEN", "The group owner cannot be removed")
	}

	if actorID != targetUserID {
		if err := s.requireManager(ctx, groupID, actorID); err != nil {
			return err
		}
	} else {
		if _, err := s.requireMember(ctx, groupID, actorID); err != nil {
			return err
		}
	}

	return s.memberRepo.Remove(ctx, groupID, targetUserID)
}

// Invite creates a group-invite notification for the invitee. Requires
// the owner or an admin; inviting an existing member is rejected.
func (s *GroupService) Invite(ctx context.Context, groupID, actorID uuid.UUID, req *InviteRequest) error {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.requireManager(ctx, groupID, actorID); err != nil {
		return err
	}
	if group.StatusAt(time.Now().UTC()) == circle.GroupStatusArchived {
		return shared.NewDomainError("GROUP_ARCHIVED", "Cannot invite members to an archived group")
	}

	if _, err := s.memberRepo.Find(ctx, groupID, req.UserID); err == nil {
		return shared.NewDomainError("ALREADY_MEMBER", "User is already a member of this group")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	invite, err := notification.New(
		req.UserID,
		notification.KindGroupInvite,
		"You have been invited to join "+group.Name,
		"",
		&group.ID,
		nil,
	)
	if err != nil {
		return err
	}

	return s.notificationRepo.Save(ctx, invite)
}

// requireMember returns the actor's membership or FORBIDDEN
func (s *GroupService) requireMember(ctx context.Context, groupID, userID uuid.UUID) (*circle.Member, error) {
	member, err := s.memberRepo.Find(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
		}
		return nil, err
	}
	return member, nil
}

// requireManager ensures the actor holds a role that may manage members
func (s *GroupService) requireManager(ctx context.Context, groupID, userID uuid.UUID) error {
	member, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member.Role.CanManageMembers() {
		return shared.NewDomainError("FORBIDDEN", "Only the group owner or an admin can perform this action")
	}
	return nil
}

// publishDomainEvents publishes all domain events from the group
func (s *GroupService) publishDomainEvents(ctx context.Context, group *circle.Group) {
	if s.eventPublisher == nil {
		return
	}
	events := group.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	group.ClearDomainEvents()
}
