package cost

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

// Summary represents aggregated cost data for one provider
type Summary struct {
	Provider  provider.ID        `json:"provider"`
	TotalCost float64            `json:"total_cost"`
	Currency  string             `json:"currency"`
	Records   int                `json:"records"`
	ByService map[string]float64 `json:"by_service"`
	ByRegion  map[string]float64 `json:"by_region"`
}

// Total sums the amounts of records.
func Total(records []Record) float64 {
	return lo.SumBy(records, func(r Record) float64 { return r.Amount })
}

// GrandTotal sums the amounts of every provider's records.
func GrandTotal(byProvider map[provider.ID][]Record) float64 {
	var total float64
	for _, records := range byProvider {
		total += Total(records)
	}
	return total
}

// Summarize builds the per-provider breakdowns shown to users.
func Summarize(byProvider map[provider.ID][]Record) []Summary {
	summaries := make([]Summary, 0, len(byProvider))
	for p, records := range byProvider {
		s := Summary{
			Provider:  p,
			Records:   len(records),
			ByService: make(map[string]float64),
			ByRegion:  make(map[string]float64),
		}
		for _, r := range records {
			s.TotalCost += r.Amount
			s.ByService[r.Service] += r.Amount
			region := r.Region
			if region == "" {
				region = "unassigned"
			}
			s.ByRegion[region] += r.Amount
			if s.Currency == "" {
				s.Currency = r.Currency
			}
		}
		s.TotalCost = Round2(s.TotalCost)
		for k, v := range s.ByService {
			s.ByService[k] = Round2(v)
		}
		for k, v := range s.ByRegion {
			s.ByRegion[k] = Round2(v)
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Provider < summaries[j].Provider })
	return summaries
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
