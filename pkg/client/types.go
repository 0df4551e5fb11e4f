package client

import "time"

// Provider represents a connected cloud provider account
type Provider struct {
	Provider    string     `json:"provider"`
	IsConnected bool       `json:"isConnected"`
	LastSynced  *time.Time `json:"lastSynced,omitempty"`
	ConnectedAt time.Time  `json:"connectedAt"`
}

// ProviderStatus represents the sync status of a provider
type ProviderStatus struct {
	Provider    string     `json:"provider"`
	IsConnected bool       `json:"isConnected"`
	LastSynced  *time.Time `json:"lastSynced,omitempty"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
}

// ConnectionTest reports whether a provider is reachable
type ConnectionTest struct {
	Provider  string `json:"provider"`
	Reachable bool   `json:"reachable"`
}

// Credentials holds the fields of one provider's connect request. Only the
// fields of the provider being connected are sent.
type Credentials struct {
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
	Region          string `json:"region,omitempty"`

	ProjectID          string `json:"projectId,omitempty"`
	ServiceAccountJSON string `json:"credentials,omitempty"`
	BillingDataset     string `json:"billingDataset,omitempty"`
	BillingAccountID   string `json:"billingAccountId,omitempty"`

	TenantID       string `json:"tenantId,omitempty"`
	ClientID       string `json:"clientId,omitempty"`
	ClientSecret   string `json:"clientSecret,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// SyncRequest selects the date range of a sync
type SyncRequest struct {
	Start string `json:"start,omitempty"` // YYYY-MM-DD
	End   string `json:"end,omitempty"`   // YYYY-MM-DD
	Days  int    `json:"days,omitempty"`
}

// SyncResult reports a finished sync
type SyncResult struct {
	Start         string            `json:"start"`
	End           string            `json:"end"`
	Providers     []string          `json:"providers"`
	Resources     int               `json:"resources"`
	Budgets       int               `json:"budgets"`
	TotalCost     float64           `json:"totalCost"`
	PersistErrors map[string]string `json:"persistErrors,omitempty"`
	DurationMs    int64             `json:"durationMs"`
	SyncedAt      time.Time         `json:"syncedAt"`
}

// CostSummary is one provider's cost breakdown
type CostSummary struct {
	Provider  string             `json:"provider"`
	TotalCost float64            `json:"totalCost"`
	Currency  string             `json:"currency"`
	Records   int                `json:"records"`
	ByService map[string]float64 `json:"byService"`
	ByRegion  map[string]float64 `json:"byRegion"`
}

// CostOverview holds the per-provider summaries and their total
type CostOverview struct {
	TotalCost float64       `json:"totalCost"`
	Providers []CostSummary `json:"providers"`
}

// CostRecord is one daily spend bucket
type CostRecord struct {
	Provider string  `json:"provider"`
	Date     string  `json:"date"`
	Service  string  `json:"service"`
	Region   string  `json:"region,omitempty"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Budget represents a budget and how much of it is spent
type Budget struct {
	ID          string  `json:"id"`
	Provider    string  `json:"provider"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Spent       float64 `json:"spent"`
	Period      string  `json:"period"`
	Utilization float64 `json:"utilization"`
}

// Resource represents a cloud resource with its estimated monthly cost
type Resource struct {
	ID          string            `json:"id"`
	Provider    string            `json:"provider"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Category    string            `json:"category"`
	Region      string            `json:"region"`
	Status      string            `json:"status"`
	Cost        float64           `json:"cost"`
	Utilization *float64          `json:"utilization,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// ResourceSummary holds resource counts and their total cost
type ResourceSummary struct {
	Total      int            `json:"total"`
	ByProvider map[string]int `json:"byProvider"`
	ByCategory map[string]int `json:"byCategory"`
	ByStatus   map[string]int `json:"byStatus"`
	TotalCost  float64        `json:"totalCost"`
}

// Snapshot is the correlated view of every connected provider
type Snapshot struct {
	Providers   []string      `json:"providers"`
	TotalCost   float64       `json:"totalCost"`
	Costs       []CostSummary `json:"costs"`
	Resources   []Resource    `json:"resources"`
	Budgets     []Budget      `json:"budgets"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// Recommendation represents a cost optimization opportunity
type Recommendation struct {
	ID          int      `json:"id"`
	Provider    string   `json:"provider"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Savings     float64  `json:"savings"`
	Effort      string   `json:"effort"`
	Impact      string   `json:"impact"`
	Category    string   `json:"category"`
	Resources   int      `json:"resources"`
	ResourceIDs []string `json:"resourceIds,omitempty"`
}

// RecommendationSummary holds aggregate savings figures
type RecommendationSummary struct {
	Count               int     `json:"count"`
	TotalSavings        float64 `json:"totalSavings"`
	AffectedResources   int     `json:"affectedResources"`
	QuickWins           int     `json:"quickWins"`
	TotalSpend          float64 `json:"totalSpend"`
	PercentageReduction float64 `json:"percentageReduction"`
}

// RecommendationList pairs recommendations with the summary of all of them
type RecommendationList struct {
	Recommendations []Recommendation      `json:"recommendations"`
	Summary         RecommendationSummary `json:"summary"`
}

// ListOptions contains common options for list operations
type ListOptions struct {
	Page     int `json:"page,omitempty"`      // Page number (1-based)
	PageSize int `json:"page_size,omitempty"` // Items per page
}

// Page represents one page of a paginated list
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
