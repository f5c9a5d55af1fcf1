package circle

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
)

func newTestUserID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestGroupID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestGroup(ownerID uuid.UUID) *circle.Group {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	group, _ := circle.NewGroup(ownerID, "Deep Work Crew", "", start, end, "UTC", circle.GoalPeriodDaily, 60)
	group.ClearDomainEvents()
	return group
}

func createTestMember(groupID, userID uuid.UUID, role circle.MemberRole) *circle.Member {
	member, _ := circle.NewMember(groupID, userID, role)
	return member
}

func TestGroupService_Create_Success(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	mockNotifRepo := new(MockNotificationRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), mockNotifRepo)

	ctx := context.Background()
	ownerID := newTestUserID()
	req := &CreateGroupRequest{
		Name:                "Deep Work Crew",
		StartAt:             time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:               time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Timezone:            "America/New_York",
		Period:              "daily",
		PeriodTargetMinutes: 90,
	}

	mockGroupRepo.On("Save", ctx, mock.AnythingOfType("*circle.Group")).Return(nil)
	mockMemberRepo.On("Add", ctx, mock.AnythingOfType("*circle.Member")).Return(nil, nil)

	result, err := service.Create(ctx, ownerID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Deep Work Crew", result.Name)
	assert.Equal(t, ownerID, result.OwnerID)
	assert.Equal(t, "daily", result.Period)
	assert.Len(t, result.Members, 1)
	assert.Equal(t, "owner", result.Members[0].Role)
	assert.Equal(t, 90, result.Members[0].TargetMinutes)
	mockGroupRepo.AssertExpectations(t)
	mockMemberRepo.AssertExpectations(t)
}

func TestGroupService_Create_InvalidTimezone(t *testing.T) {
	service := NewGroupService(new(MockGroupRepository), new(MockMemberRepository), new(MockSessionRepository), new(MockNotificationRepository))

	req := &CreateGroupRequest{
		Name:                "Crew",
		StartAt:             time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:               time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Timezone:            "Mars/Olympus_Mons",
		Period:              "daily",
		PeriodTargetMinutes: 90,
	}

	result, err := service.Create(context.Background(), newTestUserID(), req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TIMEZONE", domainErr.Code)
}

func TestGroupService_List_InvalidStatusFilter(t *testing.T) {
	service := NewGroupService(new(MockGroupRepository), new(MockMemberRepository), new(MockSessionRepository), new(MockNotificationRepository))

	result, err := service.List(context.Background(), newTestUserID(), "bogus")

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}

func TestGroupService_Get_NotAMember(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	outsiderID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, outsiderID).Return(nil, shared.ErrNotFound)

	result, err := service.Get(ctx, group.ID, outsiderID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockGroupRepo.AssertExpectations(t)
	mockMemberRepo.AssertExpectations(t)
}

func TestGroupService_Get_EmbedsMembersAndSessions(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	mockSessionRepo := new(MockSessionRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, mockSessionRepo, new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	group := createTestGroup(ownerID)
	owner := createTestMember(group.ID, ownerID, circle.MemberRoleOwner)
	session, err := focus.NewSession(&group.ID, ownerID, "Morning block", time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, ownerID).Return(owner, nil)
	mockMemberRepo.On("FindByGroupID", ctx, group.ID).Return([]*circle.Member{owner}, nil)
	mockSessionRepo.On("FindByGroupID", ctx, group.ID).Return([]*focus.Session{session}, nil)

	result, err := service.Get(ctx, group.ID, ownerID)

	assert.NoError(t, err)
	assert.Len(t, result.Members, 1)
	assert.Len(t, result.Sessions, 1)
	assert.Equal(t, session.ID, result.Sessions[0].ID)
	assert.Equal(t, "Morning block", result.Sessions[0].Title)
	assert.Equal(t, "scheduled", result.Sessions[0].Status)
	mockSessionRepo.AssertExpectations(t)
}

func TestGroupService_Update_ExpiredWindowGroup(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()

	// window elapsed, sweeper not yet run: derived status blocks the
	// update even though the stored flag is not archived
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	group, err := circle.NewGroup(ownerID, "Deep Work Crew", "", start, end, "UTC", circle.GoalPeriodDaily, 60)
	assert.NoError(t, err)
	group.ClearDomainEvents()
	owner := createTestMember(group.ID, ownerID, circle.MemberRoleOwner)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, ownerID).Return(owner, nil)

	name := "Renamed"
	result, err := service.Update(ctx, group.ID, ownerID, &UpdateGroupRequest{Name: &name})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "GROUP_ARCHIVED", domainErr.Code)
	mockGroupRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupService_Archive_OnlyOwner(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	service := NewGroupService(mockGroupRepo, new(MockMemberRepository), new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	adminID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)

	result, err := service.Archive(ctx, group.ID, adminID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockGroupRepo.AssertExpectations(t)
}

func TestGroupService_Archive_Success(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	service := NewGroupService(mockGroupRepo, new(MockMemberRepository), new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	group := createTestGroup(ownerID)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockGroupRepo.On("SaveWithLock", ctx, group, group.Version).Return(nil)

	result, err := service.Archive(ctx, group.ID, ownerID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "archived", result.Status)
	mockGroupRepo.AssertExpectations(t)
}

func TestGroupService_Archive_AlreadyArchivedIsNoOp(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	service := NewGroupService(mockGroupRepo, new(MockMemberRepository), new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	group := createTestGroup(ownerID)
	group.Archive(time.Now().UTC())
	group.ClearDomainEvents()

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)

	result, err := service.Archive(ctx, group.ID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, "archived", result.Status)
	// no SaveWithLock expected
	mockGroupRepo.AssertExpectations(t)
}

func TestGroupService_AddMember_RequiresManager(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	actorID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)
	plainMember := createTestMember(group.ID, actorID, circle.MemberRoleMember)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, actorID).Return(plainMember, nil)

	result, err := service.AddMember(ctx, group.ID, actorID, &AddMemberRequest{
		UserID: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestGroupService_AddMember_ArchivedGroup(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	group := createTestGroup(ownerID)
	group.Archive(time.Now().UTC())
	group.ClearDomainEvents()
	owner := createTestMember(group.ID, ownerID, circle.MemberRoleOwner)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, ownerID).Return(owner, nil)

	result, err := service.AddMember(ctx, group.ID, ownerID, &AddMemberRequest{
		UserID: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "GROUP_ARCHIVED", domainErr.Code)
}

func TestGroupService_RemoveMember_OwnerCannotBeRemoved(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	service := NewGroupService(mockGroupRepo, new(MockMemberRepository), new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	group := createTestGroup(ownerID)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)

	err := service.RemoveMember(ctx, group.ID, ownerID, ownerID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestGroupService_RemoveMember_SelfLeave(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	memberID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)
	member := createTestMember(group.ID, memberID, circle.MemberRoleMember)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, memberID).Return(member, nil)
	mockMemberRepo.On("Remove", ctx, group.ID, memberID).Return(nil)

	err := service.RemoveMember(ctx, group.ID, memberID, memberID)

	assert.NoError(t, err)
	mockMemberRepo.AssertExpectations(t)
}

func TestGroupService_UpdateMember_SetAndClearOverride(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	memberID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)
	member := createTestMember(group.ID, memberID, circle.MemberRoleMember)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, memberID).Return(member, nil)
	mockMemberRepo.On("Save", ctx, member).Return(nil)

	override := 120
	result, err := service.UpdateMember(ctx, group.ID, memberID, memberID, &UpdateMemberRequest{
		OverridePeriodTargetMinutes: &override,
	})

	assert.NoError(t, err)
	assert.Equal(t, 120, result.TargetMinutes)

	result, err = service.UpdateMember(ctx, group.ID, memberID, memberID, &UpdateMemberRequest{
		ClearOverride: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, group.PeriodTargetMinutes, result.TargetMinutes)
	mockMemberRepo.AssertExpectations(t)
}

func TestGroupService_Invite_AlreadyMember(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), new(MockNotificationRepository))

	ctx := context.Background()
	ownerID := newTestUserID()
	inviteeID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)
	owner := createTestMember(group.ID, ownerID, circle.MemberRoleOwner)
	existing := createTestMember(group.ID, inviteeID, circle.MemberRoleMember)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, ownerID).Return(owner, nil)
	mockMemberRepo.On("Find", ctx, group.ID, inviteeID).Return(existing, nil)

	err := service.Invite(ctx, group.ID, ownerID, &InviteRequest{UserID: inviteeID})

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_MEMBER", domainErr.Code)
}

func TestGroupService_Invite_Success(t *testing.T) {
	mockGroupRepo := new(MockGroupRepository)
	mockMemberRepo := new(MockMemberRepository)
	mockNotifRepo := new(MockNotificationRepository)
	service := NewGroupService(mockGroupRepo, mockMemberRepo, new(MockSessionRepository), mockNotifRepo)

	ctx := context.Background()
	ownerID := newTestUserID()
	inviteeID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	group := createTestGroup(ownerID)
	owner := createTestMember(group.ID, ownerID, circle.MemberRoleOwner)

	mockGroupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	mockMemberRepo.On("Find", ctx, group.ID, ownerID).Return(owner, nil)
	mockMemberRepo.On("Find", ctx, group.ID, inviteeID).Return(nil, shared.ErrNotFound)
	mockNotifRepo.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID == inviteeID && n.Kind == notification.KindGroupInvite && n.GroupID != nil && *n.GroupID == group.ID
	})).Return(nil)

	err := service.Invite(ctx, group.ID, ownerID, &InviteRequest{UserID: inviteeID})

	assert.NoError(t, err)
	mockNotifRepo.AssertExpectations(t)
}
