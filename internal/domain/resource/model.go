package resource

import (
	"maps"
	"slices"
	"strings"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

// Resource represents one inventory item of a provider. Cost is the estimated
// monthly cost and is written only by correlation.
type Resource struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Type        string            `json:"type" yaml:"type"`
	Provider    provider.ID       `json:"provider" yaml:"provider"`
	Region      string            `json:"region" yaml:"region"`
	Cost        float64           `json:"cost" yaml:"cost"`
	Utilization *float64          `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	Status      string            `json:"status" yaml:"status"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Resource status
const (
	StatusRunning    = "running"
	StatusStopped    = "stopped"
	StatusTerminated = "terminated"
)

// NormalizeStatus folds the many status strings providers report into
// running, stopped or terminated.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terminated", "deleted", "deleting", "shutting-down", "terminating", "deallocated":
		return StatusTerminated
	case "stopped", "stopping", "suspended", "terminated_by_user", "inactive", "vm stopped", "vm deallocated":
		return StatusStopped
	default:
		return StatusRunning
	}
}

// Category returns the category of the resource's type.
func (r Resource) Category() Category {
	return Classify(r.Type)
}

// Tag returns the value of the first of keys present on the resource,
// matching keys without regard to case. An exact match beats a folded one;
// among folded matches the lexically smallest tag key wins.
func (r Resource) Tag(keys ...string) (string, bool) {
	if len(r.Tags) == 0 {
		return "", false
	}
	var sorted []string
	for _, want := range keys {
		if v, ok := r.Tags[want]; ok {
			return v, true
		}
		if sorted == nil {
			sorted = slices.Sorted(maps.Keys(r.Tags))
		}
		for _, k := range sorted {
			if strings.EqualFold(k, want) {
				return r.Tags[k], true
			}
		}
	}
	return "", false
}

// Filter contains resource filtering options
type Filter struct {
	Provider provider.ID
	Category Category
	Region   string
	Status   string
}

// Match reports whether r passes every non-empty filter field.
func (f Filter) Match(r Resource) bool {
	if f.Provider != "" && r.Provider != f.Provider {
		return false
	}
	if f.Category != "" && r.Category() != f.Category {
		return false
	}
	if f.Region != "" && !strings.EqualFold(r.Region, f.Region) {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}
