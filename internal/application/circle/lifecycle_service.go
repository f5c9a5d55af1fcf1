package circle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lockin/backend/internal/domain/circle"
)

// LifecycleService runs periodic maintenance over group lifecycles
type LifecycleService struct {
	groupRepo circle.GroupRepository
	logger    *zap.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(groupRepo circle.GroupRepository, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// ArchiveExpired archives every non-archived group whose window has
// ended and returns the number of groups affected. Safe to run
// concurrently; the sweep is a single conditional update.
func (s *LifecycleService) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.groupRepo.ArchiveExpired(ctx, now.UTC())
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.logger.Info("archived expired groups",
			zap.Int64("count", count),
			zap.Time("as_of", now.UTC()))
	}

	return count, nil
}

// RunSweeper archives expired groups on the given interval until the
// context is cancelled. Intended to run in its own goroutine.
func (s *LifecycleService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ArchiveExpired(ctx, time.Now()); err != nil {
				s.logger.Error("group archival sweep failed", zap.Error(err))
			}
		}
	}
}
