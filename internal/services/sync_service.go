package services

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/recommendation"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/metrics"
	"github.com/pratik-mahalle/spendlens/internal/providers"
)

// RegistryLoader builds the provider registry of a user.
type RegistryLoader interface {
	LoadRegistry(ctx context.Context, userID int64) (*provider.Registry, error)
}

// Snapshot is the aggregated, correlated view handed to presentation.
type Snapshot struct {
	Providers       []provider.ID                 `json:"providers"`
	CostsByProvider map[provider.ID][]cost.Record `json:"costs_by_provider"`
	Resources       []resource.Resource           `json:"resources"`
	Budgets         []cost.Budget                 `json:"budgets"`
	GeneratedAt     time.Time                     `json:"generated_at"`
}

// SyncResult reports a sync run. A provider listed in PersistErrors was
// fetched but could not be written through; other providers are unaffected.
type SyncResult struct {
	Snapshot      *Snapshot              `json:"snapshot"`
	Range         cost.DateRange         `json:"range"`
	PersistErrors map[provider.ID]string `json:"persist_errors,omitempty"`
	Duration      time.Duration          `json:"duration"`
}

// SyncService runs the aggregate, correlate and write-through pipeline and
// serves snapshots and recommendations from the store.
type SyncService struct {
	registries   RegistryLoader
	providerRepo provider.Repository
	costRepo     cost.Repository
	resourceRepo resource.Repository
	backends     map[provider.ID]providers.Backends
	correlation  *CorrelationEngine
	engine       *RecommendationEngine
	callTimeout  time.Duration
	logger       *logger.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	registries RegistryLoader,
	providerRepo provider.Repository,
	costRepo cost.Repository,
	resourceRepo resource.Repository,
	backends map[provider.ID]providers.Backends,
	correlation *CorrelationEngine,
	engine *RecommendationEngine,
	callTimeout time.Duration,
	log *logger.Logger,
) *SyncService {
	return &SyncService{
		registries:   registries,
		providerRepo: providerRepo,
		costRepo:     costRepo,
		resourceRepo: resourceRepo,
		backends:     backends,
		correlation:  correlation,
		engine:       engine,
		callTimeout:  callTimeout,
		logger:       log,
	}
}

// Sync fetches every connected provider of the user, correlates the result
// and writes each provider's data through to the store.
func (s *SyncService) Sync(ctx context.Context, userID int64, r cost.DateRange) (*SyncResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	registry, err := s.registries.LoadRegistry(ctx, userID)
	if err != nil {
		return nil, err
	}
	agg := NewAggregator(registry, s.backends, s.logger, WithCallTimeout(s.callTimeout))

	var (
		costs     map[provider.ID][]cost.Record
		resources []resource.Resource
		budgets   []cost.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		costs, err = agg.FetchCosts(gctx, r)
		return err
	})
	g.Go(func() error {
		resources = agg.FetchResources(gctx)
		return nil
	})
	g.Go(func() error {
		budgets = agg.FetchBudgets(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Providers:       registry.IDs(),
		CostsByProvider: costs,
		Resources:       s.correlation.Correlate(resources, costs),
		Budgets:         budgets,
		GeneratedAt:     time.Now().UTC(),
	}

	result := &SyncResult{
		Snapshot:      snapshot,
		Range:         r,
		PersistErrors: s.persist(ctx, userID, snapshot),
		Duration:      time.Since(start),
	}
	metrics.RecordSync(result.Duration)

	s.logger.WithFields(map[string]interface{}{
		"user_id":        userID,
		"providers":      len(snapshot.Providers),
		"resources":      len(snapshot.Resources),
		"budgets":        len(snapshot.Budgets),
		"persist_errors": len(result.PersistErrors),
		"duration_ms":    result.Duration.Milliseconds(),
	}).Info("Sync completed")

	return result, nil
}

// persist writes each provider's slice of the snapshot in parallel. A failed
// provider is reported and never blocks or rolls back another.
func (s *SyncService) persist(ctx context.Context, userID int64, snap *Snapshot) map[provider.ID]string {
	resourcesBy := lo.GroupBy(snap.Resources, func(r resource.Resource) provider.ID { return r.Provider })
	budgetsBy := lo.GroupBy(snap.Budgets, func(b cost.Budget) provider.ID { return b.Provider })

	var (
		mu     sync.Mutex
		failed = map[provider.ID]string{}
		wg     sync.WaitGroup
	)
	for _, id := range snap.Providers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.persistProvider(ctx, userID, id, snap.CostsByProvider[id], resourcesBy[id], budgetsBy[id]); err != nil {
				mu.Lock()
				failed[id] = err.Error()
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(failed) == 0 {
		return nil
	}
	return failed
}

func (s *SyncService) persistProvider(ctx context.Context, userID int64, id provider.ID, costs []cost.Record, resources []resource.Resource, budgets []cost.Budget) error {
	log := s.logger.Provider(id.String(), "persist").With("user_id", userID)

	if err := s.costRepo.ReplaceCosts(ctx, userID, id, costs); err != nil {
		metrics.RecordPersistFailure(id.String(), "costs")
		log.ErrorWithErr(err, "Failed to write cost records")
		return err
	}
	if err := s.resourceRepo.ReplaceResources(ctx, userID, id, resources); err != nil {
		metrics.RecordPersistFailure(id.String(), "resources")
		log.ErrorWithErr(err, "Failed to write resources")
		return err
	}
	if err := s.costRepo.ReplaceBudgets(ctx, userID, id, budgets); err != nil {
		metrics.RecordPersistFailure(id.String(), "budgets")
		log.ErrorWithErr(err, "Failed to write budgets")
		return err
	}
	if err := s.providerRepo.UpdateSyncStatus(ctx, userID, id, time.Now().UTC()); err != nil {
		log.WarnWithErr(err, "Failed to update sync status")
	}
	return nil
}

// LoadSnapshot rebuilds the user's snapshot from the store and re-runs
// correlation over it.
func (s *SyncService) LoadSnapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	registry, err := s.registries.LoadRegistry(ctx, userID)
	if err != nil {
		return nil, err
	}
	costs, err := s.costRepo.ListCosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	resources, err := s.resourceRepo.ListResources(ctx, userID)
	if err != nil {
		return nil, err
	}
	budgets, err := s.costRepo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Providers:       registry.IDs(),
		CostsByProvider: costs,
		Resources:       s.correlation.Correlate(resources, costs),
		Budgets:         budgets,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// Recommend generates ranked recommendations over the user's stored snapshot.
func (s *SyncService) Recommend(ctx context.Context, userID int64) ([]recommendation.Recommendation, recommendation.Summary, error) {
	snap, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, recommendation.Summary{}, err
	}
	recs, summary := s.RecommendSnapshot(snap)

	s.logger.WithFields(map[string]interface{}{
		"user_id":         userID,
		"recommendations": summary.Count,
		"total_savings":   summary.TotalSavings,
	}).Info("Recommendations generated")

	return recs, summary, nil
}

// RecommendSnapshot runs the recommendation engine over snap.
func (s *SyncService) RecommendSnapshot(snap *Snapshot) ([]recommendation.Recommendation, recommendation.Summary) {
	recs := s.engine.Generate(snap.Resources, snap.Providers)

	for _, id := range snap.Providers {
		savings := lo.SumBy(recs, func(r recommendation.Recommendation) float64 {
			if r.Provider == id {
				return r.PotentialSavings
			}
			return 0
		})
		metrics.SetPotentialSavings(id.String(), cost.Round2(savings))
	}
	return recs, Summarize(recs, snap.CostsByProvider)
}

// CostSummaries returns per-provider cost breakdowns from the store.
func (s *SyncService) CostSummaries(ctx context.Context, userID int64) ([]cost.Summary, error) {
	costs, err := s.costRepo.ListCosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cost.Summarize(costs), nil
}
