package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/notification"
	"github.com/lockin/backend/internal/domain/shared"
)

// fallbackDedupTTL bounds the fast-path entry when the goal window end
// cannot be used (already past, clock skew).
const fallbackDedupTTL = 24 * time.Hour

// MilestoneNotifier reacts to recorded focus time by checking member
// and group milestones for the goal window the time landed in. The
// unique dedup key on the notifications table is the authoritative
// once-per-window guard; the dedup store only short-circuits repeated
// evaluation.
type MilestoneNotifier struct {
	groupRepo        circle.GroupRepository
	memberRepo       circle.MemberRepository
	timeLogRepo      focus.TimeLogRepository
	notificationRepo notification.Repository
	dedupStore       shared.DedupStore
	logger           *zap.Logger
}

// NewMilestoneNotifier creates a new MilestoneNotifier
func NewMilestoneNotifier(
	groupRepo circle.GroupRepository,
	memberRepo circle.MemberRepository,
	timeLogRepo focus.TimeLogRepository,
	notificationRepo notification.Repository,
	dedupStore shared.DedupStore,
	logger *zap.Logger,
) *MilestoneNotifier {
	return &MilestoneNotifier{
		groupRepo:        groupRepo,
		memberRepo:       memberRepo,
		timeLogRepo:      timeLogRepo,
		notificationRepo: notificationRepo,
		dedupStore:       dedupStore,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (m *MilestoneNotifier) EventTypes() []string {
	return []string{focus.EventTypeTimeLogRecorded}
}

// Handle processes a recorded time log: if it pushed the user over the
// group target for the window, a member milestone fires once; if every
// member is now over target, a group milestone fires once per member.
func (m *MilestoneNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*focus.TimeLogRecordedEvent)
	if !ok || recorded.GroupID == nil {
		return nil
	}

	group, err := m.groupRepo.FindByID(ctx, *recorded.GroupID)
	if err != nil {
		return fmt.Errorf("load group for milestone check: %w", err)
	}

	window, err := group.CurrentWindow(recorded.RecordedAt)
	if err != nil {
		return fmt.Errorf("resolve goal window: %w", err)
	}

	members, err := m.memberRepo.FindByGroupID(ctx, group.ID)
	if err != nil {
		return fmt.Errorf("load members for milestone check: %w", err)
	}

	var achiever *circle.Member
	for _, member := range members {
		if member.UserID == recorded.UserID {
			achiever = member
			break
		}
	}
	if achiever == nil {
		// the user left the group between logging and evaluation
		return nil
	}

	met, err := m.goalMet(ctx, group, achiever, window)
	if err != nil {
		return err
	}
	if !met {
		return nil
	}

	fired, err := m.fireMemberMilestone(ctx, group, achiever, window)
	if err != nil {
		return err
	}
	if !fired {
		return nil
	}

	return m.checkGroupMilestone(ctx, group, members, window)
}

// goalMet reports whether the member's clipped in-window time reaches
// their effective target
func (m *MilestoneNotifier) goalMet(ctx context.Context, group *circle.Group, member *circle.Member, window circle.Window) (bool, error) {
	logs, err := m.timeLogRepo.FindOverlapping(ctx, member.UserID, &group.ID, window.Start, window.End)
	if err != nil {
		return false, fmt.Errorf("load time logs for milestone check: %w", err)
	}

	var logged int64
	for _, log := range logs {
		logged += window.OverlapSeconds(log.StartedAt, log.EndedAt)
	}

	return logged >= int64(member.TargetMinutes(group.PeriodTargetMinutes))*60, nil
}

func (m *MilestoneNotifier) fireMemberMilestone(ctx context.Context, group *circle.Group, member *circle.Member, window circle.Window) (bool, error) {
	key := notification.MemberMilestoneKey(group.ID, member.UserID, window.Start)

	if seen := m.fastPathSeen(ctx, key, window); seen {
		return false, nil
	}

	n, err := notification.New(
		member.UserID,
		notification.KindMilestoneMember,
		"Goal reached",
		fmt.Sprintf("You reached your focus target in %s", group.Name),
		&group.ID,
		&key,
	)
	if err != nil {
		return false, err
	}

	inserted, err := m.notificationRepo.CreateDedup(ctx, n)
	if err != nil {
		return false, fmt.Errorf("insert member milestone: %w", err)
	}
	if inserted {
		m.logger.Info("member milestone fired",
			zap.String("group_id", group.ID.String()),
			zap.String("user_id", member.UserID.String()),
			zap.Time("window_start", window.Start))
	}
	return inserted, nil
}

// checkGroupMilestone fires the whole-group milestone when every member
// has met their target. Guarded per recipient by the dedup key, and
// only reachable from a winning member-milestone insert, so the flip
// evaluation itself never races into duplicates.
func (m *MilestoneNotifier) checkGroupMilestone(ctx context.Context, group *circle.Group, members []*circle.Member, window circle.Window) error {
	for _, member := range members {
		met, err := m.goalMet(ctx, group, member, window)
		if err != nil {
			return err
		}
		if !met {
			return nil
		}
	}

	for _, member := range members {
		key := notification.GroupMilestoneKey(group.ID, member.UserID, window.Start)
		if seen := m.fastPathSeen(ctx, key, window); seen {
			continue
		}

		n, err := notification.New(
			member.UserID,
			notification.KindMilestoneGroup,
			"Team goal reached",
			fmt.Sprintf("Everyone in %s hit their focus target", group.Name),
			&group.ID,
			&key,
		)
		if err != nil {
			return err
		}
		if _, err := m.notificationRepo.CreateDedup(ctx, n); err != nil {
			return fmt.Errorf("insert group milestone: %w", err)
		}
	}

	m.logger.Info("group milestone fired",
		zap.String("group_id", group.ID.String()),
		zap.Int("members", len(members)),
		zap.Time("window_start", window.Start))
	return nil
}

// fastPathSeen consults and updates the dedup store. Store errors are
// logged and treated as unseen so the authoritative insert decides.
func (m *MilestoneNotifier) fastPathSeen(ctx context.Context, key string, window circle.Window) bool {
	if m.dedupStore == nil {
		return false
	}

	ttl := time.Until(window.End)
	if ttl <= 0 {
		ttl = fallbackDedupTTL
	}

	newlyMarked, err := m.dedupStore.MarkSeen(ctx, key, ttl)
	if err != nil {
		m.logger.Warn("milestone dedup store unavailable", zap.Error(err), zap.String("key", key))
		return false
	}
	return !newlyMarked
}

var _ shared.EventHandler = (*MilestoneNotifier)(nil)
