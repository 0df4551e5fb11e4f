package provider

import (
	"sort"
	"time"
)

// ID identifies one cloud vendor integration.
type ID string

// Known providers
const (
	AWS   ID = "aws"
	GCP   ID = "gcp"
	Azure ID = "azure"
)

// Known returns the supported providers in their canonical order.
func Known() []ID {
	return []ID{AWS, GCP, Azure}
}

// Valid reports whether id is one of the supported providers.
func (id ID) Valid() bool {
	switch id {
	case AWS, GCP, Azure:
		return true
	}
	return false
}

func (id ID) String() string {
	return string(id)
}

// Account represents a connected provider account
type Account struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"user_id"`
	Provider    ID          `json:"provider"`
	IsConnected bool        `json:"is_connected"`
	LastSynced  *time.Time  `json:"last_synced,omitempty"`
	Credentials Credentials `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Credentials contains provider-specific credentials. The aggregator passes
// them through untouched; only the backend for the matching provider reads them.
type Credentials struct {
	// AWS
	AWSAccessKeyID     string `json:"aws_access_key_id,omitempty" yaml:"aws_access_key_id,omitempty"`
	AWSSecretAccessKey string `json:"aws_secret_access_key,omitempty" yaml:"aws_secret_access_key,omitempty"`
	AWSRegion          string `json:"aws_region,omitempty" yaml:"aws_region,omitempty"`

	// GCP
	GCPProjectID          string `json:"gcp_project_id,omitempty" yaml:"gcp_project_id,omitempty"`
	GCPServiceAccountJSON string `json:"gcp_service_account_json,omitempty" yaml:"gcp_service_account_json,omitempty"`
	GCPBillingDataset     string `json:"gcp_billing_dataset,omitempty" yaml:"gcp_billing_dataset,omitempty"`
	GCPBillingAccountID   string `json:"gcp_billing_account_id,omitempty" yaml:"gcp_billing_account_id,omitempty"`

	// Azure
	AzureTenantID       string `json:"azure_tenant_id,omitempty" yaml:"azure_tenant_id,omitempty"`
	AzureClientID       string `json:"azure_client_id,omitempty" yaml:"azure_client_id,omitempty"`
	AzureClientSecret   string `json:"azure_client_secret,omitempty" yaml:"azure_client_secret,omitempty"`
	AzureSubscriptionID string `json:"azure_subscription_id,omitempty" yaml:"azure_subscription_id,omitempty"`
}

// awsCredentials, gcpCredentials and azureCredentials carry the validation
// rules for each provider's required fields.
type awsCredentials struct {
	AccessKeyID     string `json:"aws_access_key_id" validate:"required,min=16"`
	SecretAccessKey string `json:"aws_secret_access_key" validate:"required"`
	Region          string `json:"aws_region" validate:"omitempty,min=2"`
}

type gcpCredentials struct {
	ProjectID          string `json:"gcp_project_id" validate:"required"`
	ServiceAccountJSON string `json:"gcp_service_account_json" validate:"required,json"`
}

type azureCredentials struct {
	TenantID       string `json:"azure_tenant_id" validate:"required,uuid"`
	ClientID       string `json:"azure_client_id" validate:"required,uuid"`
	ClientSecret   string `json:"azure_client_secret" validate:"required"`
	SubscriptionID string `json:"azure_subscription_id" validate:"required,uuid"`
}

// Required returns the struct holding the fields id needs, ready for validation.
// It returns nil for an unknown provider.
func (c Credentials) Required(id ID) interface{} {
	switch id {
	case AWS:
		return awsCredentials{c.AWSAccessKeyID, c.AWSSecretAccessKey, c.AWSRegion}
	case GCP:
		return gcpCredentials{c.GCPProjectID, c.GCPServiceAccountJSON}
	case Azure:
		return azureCredentials{c.AzureTenantID, c.AzureClientID, c.AzureClientSecret, c.AzureSubscriptionID}
	}
	return nil
}

// SyncStatus represents the sync status
type SyncStatus struct {
	Provider    ID         `json:"provider"`
	IsConnected bool       `json:"is_connected"`
	LastSynced  *time.Time `json:"last_synced,omitempty"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
}

// SortIDs sorts ids in place and returns them.
func SortIDs(ids []ID) []ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DisplayName returns the vendor name as shown to people.
func (id ID) DisplayName() string {
	switch id {
	case AWS:
		return "AWS"
	case GCP:
		return "GCP"
	case Azure:
		return "Azure"
	}
	return string(id)
}
