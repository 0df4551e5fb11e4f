package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/services"
)

type staticUsers struct {
	ids []int64
	err error
}

func (u staticUsers) ListUsers(ctx context.Context) ([]int64, error) {
	return u.ids, u.err
}

type recordingSyncer struct {
	mu     sync.Mutex
	calls  map[int64]cost.DateRange
	failOn  int64
	started chan struct{}
	block   chan struct{}
}

func newRecordingSyncer() *recordingSyncer {
	return &recordingSyncer{calls: make(map[int64]cost.DateRange)}
}

func (s *recordingSyncer) Sync(ctx context.Context, userID int64, r cost.DateRange) (*services.SyncResult, error) {
	if s.block != nil {
		close(s.started)
		<-s.block
	}
	s.mu.Lock()
	s.calls[userID] = r
	s.mu.Unlock()
	if userID == s.failOn {
		return nil, errors.New("boom")
	}
	return &services.SyncResult{Range: r}, nil
}

func (s *recordingSyncer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestScheduler(users UserLister, syncer Syncer) *SyncScheduler {
	s := NewSyncScheduler(users, syncer, "0 */6 * * *", 7, logger.Nop())
	s.now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSyncScheduler_RunOnceSyncsEveryUser(t *testing.T) {
	syncer := newRecordingSyncer()
	syncer.failOn = 2
	s := newTestScheduler(staticUsers{ids: []int64{1, 2, 3}}, syncer)

	s.RunOnce(context.Background())

	require.Equal(t, 3, syncer.count(), "a failing user must not stop the others")
	want := cost.LastDays(s.now(), 7)
	for _, id := range []int64{1, 2, 3} {
		assert.Equal(t, want, syncer.calls[id])
	}
}

func TestSyncScheduler_ListUsersError(t *testing.T) {
	syncer := newRecordingSyncer()
	s := newTestScheduler(staticUsers{err: errors.New("db down")}, syncer)

	s.RunOnce(context.Background())

	assert.Zero(t, syncer.count())
}

func TestSyncScheduler_CancelledContextStops(t *testing.T) {
	syncer := newRecordingSyncer()
	s := newTestScheduler(staticUsers{ids: []int64{1, 2}}, syncer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)

	assert.Zero(t, syncer.count())
}

func TestSyncScheduler_SkipsOverlappingRun(t *testing.T) {
	syncer := newRecordingSyncer()
	syncer.started = make(chan struct{})
	syncer.block = make(chan struct{})
	s := newTestScheduler(staticUsers{ids: []int64{1}}, syncer)

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()

	<-syncer.started

	s.RunOnce(context.Background())
	close(syncer.block)
	<-done

	assert.Equal(t, 1, syncer.count())
}

func TestSyncScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewSyncScheduler(staticUsers{}, newRecordingSyncer(), "not a schedule", 7, logger.Nop())
	err := s.Start(context.Background())
	assert.Error(t, err)
}

func TestSyncScheduler_StartAndStop(t *testing.T) {
	s := newTestScheduler(staticUsers{}, newRecordingSyncer())
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	assert.Len(t, s.cron.Entries(), 1)
	cancel()
}
