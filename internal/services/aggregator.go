package services

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/metrics"
	"github.com/pratik-mahalle/spendlens/internal/providers"
)

// Aggregator operations, used in logs and metrics.
const (
	OpFetchCosts     = "fetch_costs"
	OpFetchResources = "fetch_resources"
	OpFetchBudgets   = "fetch_budgets"
	OpTestConnection = "test_connection"
)

// Aggregator fans each operation out to every registered provider at once.
// Every provider tries its primary backend, then its fallback; if both fail
// it contributes the zero value. Only caller misuse is returned as an error.
type Aggregator struct {
	registry    *provider.Registry
	backends    map[provider.ID]providers.Backends
	callTimeout time.Duration
	logger      *logger.Logger
}

// AggregatorOption configures an Aggregator
type AggregatorOption func(*Aggregator)

// WithCallTimeout bounds every individual backend call.
func WithCallTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		a.callTimeout = d
	}
}

// NewAggregator creates an aggregator over registry using the given backend wiring.
func NewAggregator(registry *provider.Registry, backends map[provider.ID]providers.Backends, log *logger.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		registry: registry,
		backends: backends,
		logger:   log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the registry the aggregator reads.
func (a *Aggregator) Registry() *provider.Registry {
	return a.registry
}

// FetchCosts returns each registered provider's cost records for r.
func (a *Aggregator) FetchCosts(ctx context.Context, r cost.DateRange) (map[provider.ID][]cost.Record, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	byProvider := fanOut(ctx, a, OpFetchCosts, func(ctx context.Context, c providers.Client, creds provider.Credentials) ([]cost.Record, error) {
		return c.FetchCosts(ctx, creds, r.Start, r.End)
	})

	for id, records := range byProvider {
		kept := make([]cost.Record, 0, len(records))
		for _, rec := range records {
			if rec.Amount < 0 {
				a.logger.Provider(id.String(), OpFetchCosts).
					WarnWithErr(errors.MalformedData(fmt.Sprintf("negative amount %.2f for %q", rec.Amount, rec.Service), nil), "Dropping cost record")
				continue
			}
			kept = append(kept, rec)
		}
		byProvider[id] = kept
	}
	return byProvider, nil
}

// FetchResources returns every registered provider's resources as one list,
// tagged with their provider and with cost reset for correlation. A resource
// ID a provider reports twice is kept once, first occurrence wins.
func (a *Aggregator) FetchResources(ctx context.Context) []resource.Resource {
	byProvider := fanOut(ctx, a, OpFetchResources, func(ctx context.Context, c providers.Client, creds provider.Credentials) ([]resource.Resource, error) {
		return c.FetchResources(ctx, creds)
	})

	out := []resource.Resource{}
	for _, id := range provider.SortIDs(lo.Keys(byProvider)) {
		seen := make(map[string]struct{}, len(byProvider[id]))
		for _, r := range byProvider[id] {
			if _, dup := seen[r.ID]; dup {
				a.logger.Provider(id.String(), OpFetchResources).
					WarnWithErr(errors.MalformedData(fmt.Sprintf("duplicate resource ID %q", r.ID), nil), "Dropping resource")
				continue
			}
			seen[r.ID] = struct{}{}
			r.Provider = id
			r.Cost = 0
			out = append(out, r)
		}
	}
	return out
}

// FetchBudgets returns every registered provider's budgets as one list.
func (a *Aggregator) FetchBudgets(ctx context.Context) []cost.Budget {
	byProvider := fanOut(ctx, a, OpFetchBudgets, func(ctx context.Context, c providers.Client, creds provider.Credentials) ([]cost.Budget, error) {
		return c.FetchBudgets(ctx, creds)
	})

	out := []cost.Budget{}
	for _, id := range provider.SortIDs(lo.Keys(byProvider)) {
		for _, b := range byProvider[id] {
			b.Provider = id
			out = append(out, b)
		}
	}
	return out
}

// TestConnections reports whether each registered provider is reachable.
func (a *Aggregator) TestConnections(ctx context.Context) map[provider.ID]bool {
	return fanOut(ctx, a, OpTestConnection, func(ctx context.Context, c providers.Client, creds provider.Credentials) (bool, error) {
		return c.TestConnection(ctx, creds)
	})
}

type backendCall[T any] func(ctx context.Context, c providers.Client, creds provider.Credentials) (T, error)

// fanOut runs call for every registered provider concurrently. Each goroutine
// owns one slot; the map is assembled after all of them return.
func fanOut[T any](ctx context.Context, a *Aggregator, op string, call backendCall[T]) map[provider.ID]T {
	entries := a.registry.Snapshot()
	ids := provider.SortIDs(lo.Keys(entries))
	metrics.SetRegisteredProviders(len(ids))

	slots := make([]T, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			slots[i] = withFallback(ctx, a, id, entries[id], op, call)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[provider.ID]T, len(ids))
	for i, id := range ids {
		out[id] = slots[i]
	}
	return out
}

func withFallback[T any](ctx context.Context, a *Aggregator, id provider.ID, creds provider.Credentials, op string, call backendCall[T]) T {
	var zero T
	log := a.logger.Provider(id.String(), op)

	b, ok := a.backends[id]
	if !ok || b.Primary == nil {
		log.Warn("No backend wired for provider")
		return zero
	}

	v, err := invoke(ctx, a, id, op, "primary", b.Primary, creds, call)
	if err == nil {
		return v
	}
	log.WithFields(map[string]interface{}{
		"source": "primary",
		"code":   errors.CodeOf(err),
	}).WarnWithErr(err, "Primary backend failed")

	if b.Fallback == nil {
		log.Warn("No fallback backend; provider contributes no data")
		return zero
	}
	metrics.RecordProviderFallback(id.String(), op)

	v, err = invoke(ctx, a, id, op, "fallback", b.Fallback, creds, call)
	if err == nil {
		return v
	}
	log.WithFields(map[string]interface{}{
		"source": "fallback",
		"code":   errors.CodeOf(err),
	}).ErrorWithErr(err, "Fallback backend failed; provider contributes no data")
	return zero
}

func invoke[T any](ctx context.Context, a *Aggregator, id provider.ID, op, source string, c providers.Client, creds provider.Credentials, call backendCall[T]) (v T, err error) {
	if a.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.callTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Internal(fmt.Sprintf("%s backend panicked", source), fmt.Errorf("%v", rec))
		}
		metrics.RecordProviderCall(id.String(), op, source, err, time.Since(start))
	}()

	return call(ctx, c, creds)
}
