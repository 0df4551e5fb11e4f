package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/validator"
	"github.com/pratik-mahalle/spendlens/internal/providers"
)

// ProviderService manages connected provider accounts and builds the
// per-user registries the aggregator reads.
type ProviderService struct {
	providerRepo provider.Repository
	costRepo     cost.Repository
	resourceRepo resource.Repository
	backends     map[provider.ID]providers.Backends
	callTimeout  time.Duration
	logger       *logger.Logger
}

// NewProviderService creates a new provider service
func NewProviderService(
	providerRepo provider.Repository,
	costRepo cost.Repository,
	resourceRepo resource.Repository,
	backends map[provider.ID]providers.Backends,
	callTimeout time.Duration,
	log *logger.Logger,
) *ProviderService {
	return &ProviderService{
		providerRepo: providerRepo,
		costRepo:     costRepo,
		resourceRepo: resourceRepo,
		backends:     backends,
		callTimeout:  callTimeout,
		logger:       log,
	}
}

// Connect validates and tests credentials, then stores the account.
func (s *ProviderService) Connect(ctx context.Context, userID int64, id provider.ID, creds provider.Credentials) (*provider.Account, error) {
	if !id.Valid() {
		return nil, errors.BadRequest("Unsupported provider type")
	}
	if verrs := validator.Validate(creds.Required(id)); len(verrs) > 0 {
		return nil, errors.ValidationError("Invalid credentials", verrs)
	}

	if !s.TestCredentials(ctx, id, creds) {
		s.logger.WithFields(map[string]interface{}{
			"user_id":  userID,
			"provider": id,
		}).Warn("Provider connection test failed")
		return nil, errors.ProviderAuthError(id.String(), nil)
	}

	account := &provider.Account{
		UserID:      userID,
		Provider:    id,
		IsConnected: true,
		Credentials: creds,
	}
	if err := s.providerRepo.Upsert(ctx, account); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save provider")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"provider": id,
	}).Info("Provider connected")

	return account, nil
}

// TestCredentials runs a connectivity test for one provider through its
// primary and fallback backends.
func (s *ProviderService) TestCredentials(ctx context.Context, id provider.ID, creds provider.Credentials) bool {
	registry := provider.NewRegistry()
	registry.Add(id, creds)
	return s.aggregator(registry).TestConnections(ctx)[id]
}

// Disconnect removes the account and the data synced for it.
func (s *ProviderService) Disconnect(ctx context.Context, userID int64, id provider.ID) error {
	if err := s.providerRepo.Delete(ctx, userID, id); err != nil {
		if !errors.IsNotFound(err) {
			s.logger.ErrorWithErr(err, "Failed to disconnect provider")
		}
		return err
	}

	if err := s.costRepo.DeleteByProvider(ctx, userID, id); err != nil {
		s.logger.Warnf("Failed to delete costs for provider %s: %v", id, err)
	}
	if err := s.resourceRepo.DeleteByProvider(ctx, userID, id); err != nil {
		s.logger.Warnf("Failed to delete resources for provider %s: %v", id, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"provider": id,
	}).Info("Provider disconnected")

	return nil
}

// List retrieves all provider accounts for a user
func (s *ProviderService) List(ctx context.Context, userID int64) ([]*provider.Account, error) {
	return s.providerRepo.List(ctx, userID)
}

// LoadRegistry builds a registry of the user's connected providers.
func (s *ProviderService) LoadRegistry(ctx context.Context, userID int64) (*provider.Registry, error) {
	accounts, err := s.providerRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	registry := provider.NewRegistry()
	for _, a := range accounts {
		if a.IsConnected {
			registry.Add(a.Provider, a.Credentials)
		}
	}
	return registry, nil
}

// Test reports connectivity for every connected provider of the user.
func (s *ProviderService) Test(ctx context.Context, userID int64) (map[provider.ID]bool, error) {
	registry, err := s.LoadRegistry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregator(registry).TestConnections(ctx), nil
}

// GetSyncStatus gets the sync status for all providers
func (s *ProviderService) GetSyncStatus(ctx context.Context, userID int64) ([]*provider.SyncStatus, error) {
	accounts, err := s.providerRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]*provider.SyncStatus, 0, len(accounts))
	for _, a := range accounts {
		status := "never_synced"
		if a.LastSynced != nil {
			status = "synced"
		}
		if !a.IsConnected {
			status = "disconnected"
		}
		statuses = append(statuses, &provider.SyncStatus{
			Provider:    a.Provider,
			IsConnected: a.IsConnected,
			LastSynced:  a.LastSynced,
			Status:      status,
		})
	}
	return statuses, nil
}

func (s *ProviderService) aggregator(registry *provider.Registry) *Aggregator {
	return NewAggregator(registry, s.backends, s.logger, WithCallTimeout(s.callTimeout))
}
