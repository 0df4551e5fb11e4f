package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/services"
)

// UserLister returns every user with at least one connected provider.
type UserLister interface {
	ListUsers(ctx context.Context) ([]int64, error)
}

// Syncer runs one sync for one user.
type Syncer interface {
	Sync(ctx context.Context, userID int64, r cost.DateRange) (*services.SyncResult, error)
}

// SyncScheduler periodically syncs every user with connected providers
type SyncScheduler struct {
	users        UserLister
	syncer       Syncer
	schedule     string
	lookbackDays int
	logger       *logger.Logger
	now          func() time.Time

	cron    *cron.Cron
	running sync.Mutex
}

// NewSyncScheduler creates a new sync scheduler. schedule is a standard
// five-field cron expression.
func NewSyncScheduler(
	users UserLister,
	syncer Syncer,
	schedule string,
	lookbackDays int,
	log *logger.Logger,
) *SyncScheduler {
	return &SyncScheduler{
		users:        users,
		syncer:       syncer,
		schedule:     schedule,
		lookbackDays: lookbackDays,
		logger:       log,
		now:          time.Now,
	}
}

// Start registers the sync job and runs it until ctx is cancelled.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", s.schedule, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"schedule":      s.schedule,
		"lookback_days": s.lookbackDays,
	}).Info("Starting sync scheduler")
	s.cron.Start()

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.logger.Info("Sync scheduler stopped")
	}()

	return nil
}

// RunOnce syncs every user. A run that starts while another is still in
// progress is skipped.
func (s *SyncScheduler) RunOnce(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.Warn("Previous sync run still in progress, skipping")
		return
	}
	defer s.running.Unlock()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list users for scheduled sync")
		return
	}

	r := cost.LastDays(s.now(), s.lookbackDays)
	s.logger.WithFields(map[string]interface{}{
		"users": len(users),
		"range": r.String(),
	}).Info("Starting scheduled sync")

	var failed int
	for _, userID := range users {
		if ctx.Err() != nil {
			return
		}
		if err := s.syncUser(ctx, userID, r); err != nil {
			failed++
			s.logger.WithFields(map[string]interface{}{
				"user_id": userID,
			}).ErrorWithErr(err, "Scheduled sync failed")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"users":  len(users),
		"failed": failed,
	}).Info("Completed scheduled sync")
}

func (s *SyncScheduler) syncUser(ctx context.Context, userID int64, r cost.DateRange) error {
	result, err := s.syncer.Sync(ctx, userID, r)
	if err != nil {
		return err
	}

	for id, msg := range result.PersistErrors {
		s.logger.WithFields(map[string]interface{}{
			"user_id":  userID,
			"provider": id,
			"error":    msg,
		}).Warn("Provider data could not be stored")
	}
	return nil
}
