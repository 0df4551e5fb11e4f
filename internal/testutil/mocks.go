package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
)

// MockClient is a providers.Client whose behavior is set per test. A nil
// function returns the zero value and no error.
type MockClient struct {
	FetchCostsFunc     func(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error)
	FetchResourcesFunc func(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error)
	FetchBudgetsFunc   func(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error)
	TestConnectionFunc func(ctx context.Context, creds provider.Credentials) (bool, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockClient) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[op]++
}

// Calls returns how many times op was invoked.
func (m *MockClient) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockClient) FetchCosts(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error) {
	m.record("fetch_costs")
	if m.FetchCostsFunc == nil {
		return nil, nil
	}
	return m.FetchCostsFunc(ctx, creds, start, end)
}

func (m *MockClient) FetchResources(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error) {
	m.record("fetch_resources")
	if m.FetchResourcesFunc == nil {
		return nil, nil
	}
	return m.FetchResourcesFunc(ctx, creds)
}

func (m *MockClient) FetchBudgets(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error) {
	m.record("fetch_budgets")
	if m.FetchBudgetsFunc == nil {
		return nil, nil
	}
	return m.FetchBudgetsFunc(ctx, creds)
}

func (m *MockClient) TestConnection(ctx context.Context, creds provider.Credentials) (bool, error) {
	m.record("test_connection")
	if m.TestConnectionFunc == nil {
		return false, nil
	}
	return m.TestConnectionFunc(ctx, creds)
}

// MockProviderRepository is an in-memory provider.Repository
type MockProviderRepository struct {
	mu          sync.Mutex
	Accounts    map[int64]map[provider.ID]*provider.Account
	UpsertError error
	ListError   error
}

func NewMockProviderRepository() *MockProviderRepository {
	return &MockProviderRepository{
		Accounts: make(map[int64]map[provider.ID]*provider.Account),
	}
}

func (m *MockProviderRepository) Upsert(ctx context.Context, a *provider.Account) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Accounts[a.UserID] == nil {
		m.Accounts[a.UserID] = make(map[provider.ID]*provider.Account)
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	m.Accounts[a.UserID][a.Provider] = a
	return nil
}

func (m *MockProviderRepository) Get(ctx context.Context, userID int64, id provider.ID) (*provider.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[userID][id]
	if !ok {
		return nil, errors.NotFound("Provider")
	}
	return a, nil
}

func (m *MockProviderRepository) List(ctx context.Context, userID int64) ([]*provider.Account, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*provider.Account
	for _, a := range m.Accounts[userID] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

func (m *MockProviderRepository) ListUsers(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int64
	for userID, accounts := range m.Accounts {
		for _, a := range accounts {
			if a.IsConnected {
				out = append(out, userID)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *MockProviderRepository) Delete(ctx context.Context, userID int64, id provider.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Accounts[userID][id]; !ok {
		return errors.NotFound("Provider")
	}
	delete(m.Accounts[userID], id)
	return nil
}

func (m *MockProviderRepository) UpdateSyncStatus(ctx context.Context, userID int64, id provider.ID, lastSynced time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[userID][id]
	if !ok {
		return errors.NotFound("Provider")
	}
	a.LastSynced = &lastSynced
	return nil
}

// MockCostRepository is an in-memory cost.Repository. FailFor makes every
// write for the listed providers fail.
type MockCostRepository struct {
	mu      sync.Mutex
	Costs   map[int64]map[provider.ID][]cost.Record
	Budgets map[int64]map[provider.ID][]cost.Budget
	FailFor map[provider.ID]error
}

func NewMockCostRepository() *MockCostRepository {
	return &MockCostRepository{
		Costs:   make(map[int64]map[provider.ID][]cost.Record),
		Budgets: make(map[int64]map[provider.ID][]cost.Budget),
		FailFor: make(map[provider.ID]error),
	}
}

func (m *MockCostRepository) ReplaceCosts(ctx context.Context, userID int64, id provider.ID, records []cost.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailFor[id]; err != nil {
		return err
	}
	if m.Costs[userID] == nil {
		m.Costs[userID] = make(map[provider.ID][]cost.Record)
	}
	m.Costs[userID][id] = append([]cost.Record(nil), records...)
	return nil
}

func (m *MockCostRepository) ListCosts(ctx context.Context, userID int64) (map[provider.ID][]cost.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[provider.ID][]cost.Record)
	for id, records := range m.Costs[userID] {
		out[id] = append([]cost.Record(nil), records...)
	}
	return out, nil
}

func (m *MockCostRepository) ReplaceBudgets(ctx context.Context, userID int64, id provider.ID, budgets []cost.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailFor[id]; err != nil {
		return err
	}
	if m.Budgets[userID] == nil {
		m.Budgets[userID] = make(map[provider.ID][]cost.Budget)
	}
	m.Budgets[userID][id] = append([]cost.Budget(nil), budgets...)
	return nil
}

func (m *MockCostRepository) ListBudgets(ctx context.Context, userID int64) ([]cost.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []cost.Budget{}
	for _, id := range provider.Known() {
		out = append(out, m.Budgets[userID][id]...)
	}
	return out, nil
}

func (m *MockCostRepository) DeleteByProvider(ctx context.Context, userID int64, id provider.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Costs[userID], id)
	delete(m.Budgets[userID], id)
	return nil
}

// MockResourceRepository is an in-memory resource.Repository
type MockResourceRepository struct {
	mu        sync.Mutex
	Resources map[int64]map[provider.ID][]resource.Resource
	FailFor   map[provider.ID]error
}

func NewMockResourceRepository() *MockResourceRepository {
	return &MockResourceRepository{
		Resources: make(map[int64]map[provider.ID][]resource.Resource),
		FailFor:   make(map[provider.ID]error),
	}
}

func (m *MockResourceRepository) ReplaceResources(ctx context.Context, userID int64, id provider.ID, resources []resource.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailFor[id]; err != nil {
		return err
	}
	if m.Resources[userID] == nil {
		m.Resources[userID] = make(map[provider.ID][]resource.Resource)
	}
	m.Resources[userID][id] = append([]resource.Resource(nil), resources...)
	return nil
}

func (m *MockResourceRepository) ListResources(ctx context.Context, userID int64) ([]resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []resource.Resource{}
	for _, id := range provider.Known() {
		out = append(out, m.Resources[userID][id]...)
	}
	return out, nil
}

func (m *MockResourceRepository) DeleteByProvider(ctx context.Context, userID int64, id provider.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Resources[userID], id)
	return nil
}
