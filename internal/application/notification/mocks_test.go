package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
)

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateDedup(ctx context.Context, n *notification.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, opts notification.ListOptions) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ notification.Repository = (*MockNotificationRepository)(nil)

// MockGroupRepository is a mock implementation of circle.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Save(ctx context.Context, group *circle.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) SaveWithLock(ctx context.Context, group *circle.Group, expectedVersion int) error {
	args := m.Called(ctx, group, expectedVersion)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*circle.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*circle.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *circle.GroupStatus, now time.Time) ([]*circle.Group, error) {
	args := m.Called(ctx, userID, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*circle.Group), args.Error(1)
}

func (m *MockGroupRepository) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ circle.GroupRepository = (*MockGroupRepository)(nil)

// MockMemberRepository is a mock implementation of circle.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Add(ctx context.Context, member *circle.Member) (*circle.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return member, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*circle.Member), args.Error(1)
}

func (m *MockMemberRepository) Save(ctx context.Context, member *circle.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Find(ctx context.Context, groupID, userID uuid.UUID) (*circle.Member, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*circle.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*circle.Member, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*circle.Member), args.Error(1)
}

func (m *MockMemberRepository) Remove(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

var _ circle.MemberRepository = (*MockMemberRepository)(nil)

// MockTimeLogRepository is a mock implementation of focus.TimeLogRepository
type MockTimeLogRepository struct {
	mock.Mock
}

func (m *MockTimeLogRepository) Save(ctx context.Context, log *focus.TimeLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockTimeLogRepository) FindOverlapping(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID, windowStart, windowEnd time.Time) ([]*focus.TimeLog, error) {
	args := m.Called(ctx, userID, groupID, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*focus.TimeLog), args.Error(1)
}

func (m *MockTimeLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*focus.TimeLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*focus.TimeLog), args.Error(1)
}

var _ focus.TimeLogRepository = (*MockTimeLogRepository)(nil)

// MockDedupStore is a mock implementation of shared.DedupStore
type MockDedupStore struct {
	mock.Mock
}

func (m *MockDedupStore) MarkSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupStore) IsSeen(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ shared.DedupStore = (*MockDedupStore)(nil)
