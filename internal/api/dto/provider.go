package dto

import (
	"time"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

// ProviderDTO represents a cloud provider account in API responses
type ProviderDTO struct {
	Provider    provider.ID `json:"provider"`
	IsConnected bool        `json:"isConnected"`
	LastSynced  *time.Time  `json:"lastSynced,omitempty"`
	ConnectedAt time.Time   `json:"connectedAt"`
}

// ConnectProviderRequest represents a provider connection request.
// Only the fields of the provider being connected are read.
type ConnectProviderRequest struct {
	// AWS credentials
	AWSAccessKeyID     *string `json:"accessKeyId,omitempty"`
	AWSSecretAccessKey *string `json:"secretAccessKey,omitempty"`
	AWSRegion          *string `json:"region,omitempty"`

	// GCP credentials
	GCPProjectID          *string `json:"projectId,omitempty"`
	GCPServiceAccountJSON *string `json:"credentials,omitempty"`
	GCPBillingDataset     *string `json:"billingDataset,omitempty"`
	GCPBillingAccountID   *string `json:"billingAccountId,omitempty"`

	// Azure credentials
	AzureTenantID       *string `json:"tenantId,omitempty"`
	AzureClientID       *string `json:"clientId,omitempty"`
	AzureClientSecret   *string `json:"clientSecret,omitempty"`
	AzureSubscriptionID *string `json:"subscriptionId,omitempty"`
}

// Credentials converts the request into provider credentials.
func (r ConnectProviderRequest) Credentials() provider.Credentials {
	return provider.Credentials{
		AWSAccessKeyID:        deref(r.AWSAccessKeyID),
		AWSSecretAccessKey:    deref(r.AWSSecretAccessKey),
		AWSRegion:             deref(r.AWSRegion),
		GCPProjectID:          deref(r.GCPProjectID),
		GCPServiceAccountJSON: deref(r.GCPServiceAccountJSON),
		GCPBillingDataset:     deref(r.GCPBillingDataset),
		GCPBillingAccountID:   deref(r.GCPBillingAccountID),
		AzureTenantID:         deref(r.AzureTenantID),
		AzureClientID:         deref(r.AzureClientID),
		AzureClientSecret:     deref(r.AzureClientSecret),
		AzureSubscriptionID:   deref(r.AzureSubscriptionID),
	}
}

// ProviderStatusResponse represents provider status information
type ProviderStatusResponse struct {
	Provider    provider.ID `json:"provider"`
	IsConnected bool        `json:"isConnected"`
	LastSynced  *time.Time  `json:"lastSynced,omitempty"`
	Status      string      `json:"status"`
	Message     string      `json:"message,omitempty"`
}

// ConnectionTestDTO reports the reachability of one provider
type ConnectionTestDTO struct {
	Provider  provider.ID `json:"provider"`
	Reachable bool        `json:"reachable"`
}

// NewProviderDTO converts an account, leaving credentials out.
func NewProviderDTO(a *provider.Account) ProviderDTO {
	return ProviderDTO{
		Provider:    a.Provider,
		IsConnected: a.IsConnected,
		LastSynced:  a.LastSynced,
		ConnectedAt: a.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
