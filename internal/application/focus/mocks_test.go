package focus

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/shared"
)

// MockSessionRepository is a mock implementation of focus.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, session *focus.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) SaveWithStatusCheck(ctx context.Context, session *focus.Session, expectedStatus focus.SessionStatus) error {
	args := m.Called(ctx, session, expectedStatus)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*focus.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*focus.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*focus.Session, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*focus.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*focus.Session, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*focus.Session), args.Error(1)
}

var _ focus.SessionRepository = (*MockSessionRepository)(nil)

// MockParticipantRepository is a mock implementation of focus.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) GetOrCreate(ctx context.Context, participant *focus.Participant) (*focus.Participant, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		// a nil configured result with no error echoes the input,
		// matching the idempotent-insert contract
		if args.Error(1) == nil {
			return participant, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*focus.Participant), args.Error(1)
}

func (m *MockParticipantRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*focus.Participant, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*focus.Participant), args.Error(1)
}

var _ focus.ParticipantRepository = (*MockParticipantRepository)(nil)

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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var _ shared.EventPublisher = (*MockEventPublisher)(nil)
