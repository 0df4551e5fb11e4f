package services

import "github.com/pratik-mahalle/spendlens/internal/config"

// PoliciesFromConfig maps the configured constants onto the engine policies.
func PoliciesFromConfig(p config.PolicyConfig) (CorrelationPolicy, RecommendationPolicy) {
	return CorrelationPolicy{
			FallbackShare:        p.FallbackShare,
			FallbackMinResources: p.FallbackMinResources,
		}, RecommendationPolicy{
			UnderutilizedBelow: p.UnderutilizedBelow,
			UnderutilizedShare: p.UnderutilizedShare,
			StorageShare:       p.StorageShare,
			ReservedMinCost:    p.ReservedMinCost,
			ReservedShare:      p.ReservedShare,
			NetworkShare:       p.NetworkShare,
			NetworkMinSavings:  p.NetworkMinSavings,
			DevTestShare:       p.DevTestShare,
			DevTestMinSavings:  p.DevTestMinSavings,
		}
}
