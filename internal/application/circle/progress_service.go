package circle

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/shared"
)

// ProgressService computes per-member and team progress against a
// group's goal for the window containing a given instant.
type ProgressService struct {
	groupRepo   circle.GroupRepository
	memberRepo  circle.MemberRepository
	timeLogRepo focus.TimeLogRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	groupRepo circle.GroupRepository,
	memberRepo circle.MemberRepository,
	timeLogRepo focus.TimeLogRepository,
) *ProgressService {
	return &ProgressService{
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		timeLogRepo: timeLogRepo,
	}
}

// ComputeProgress computes progress for the goal window containing the
// current instant. Only members may view progress.
func (s *ProgressService) ComputeProgress(ctx context.Context, groupID, userID uuid.UUID) (*ProgressResponse, error) {
	return s.ComputeProgressAt(ctx, groupID, userID, time.Now().UTC())
}

// ComputeProgressAt computes progress for the goal window containing
// the given instant. Logs are clipped to the window boundaries, so a
// log spanning midnight counts only its in-window portion. The result
// is deterministic for a fixed instant and set of stored logs.
func (s *ProgressService) ComputeProgressAt(ctx context.Context, groupID, userID uuid.UUID, now time.Time) (*ProgressResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := requireMembership(members, userID); err != nil {
		return nil, err
	}

	window, err := group.CurrentWindow(now)
	if err != nil {
		return nil, err
	}

	resp := &ProgressResponse{
		GroupID:     group.ID,
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
		Rows:        make([]GroupProgressRow, 0, len(members)),
	}

	for _, member := range members {
		logs, err := s.timeLogRepo.FindOverlapping(ctx, member.UserID, &group.ID, window.Start, window.End)
		if err != nil {
			return nil, err
		}

		var done int64
		for _, log := range logs {
			done += window.OverlapSeconds(log.StartedAt, log.EndedAt)
		}

		target := member.TargetMinutes(group.PeriodTargetMinutes)
		resp.Rows = append(resp.Rows, GroupProgressRow{
			UserID:        member.UserID,
			PeriodStart:   window.Start,
			PeriodEnd:     window.End,
			SecondsDone:   done,
			TargetMinutes: target,
			GoalMet:       done >= int64(target)*60,
		})

		resp.TeamSecondsDone += done
		resp.TeamTargetMinutes += target
	}

	sort.Slice(resp.Rows, func(i, j int) bool {
		return resp.Rows[i].UserID.String() < resp.Rows[j].UserID.String()
	})

	resp.TeamGoalMet = resp.TeamSecondsDone >= int64(resp.TeamTargetMinutes)*60
	return resp, nil
}

func requireMembership(members []*circle.Member, userID uuid.UUID) error {
	for _, m := range members {
		if m.UserID == userID {
			return nil
		}
	}
	return shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
}
