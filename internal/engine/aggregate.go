package engine

import (
	"sort"

	"github.com/scattaneo/pharmapartner/internal/model"
)

// Aggregate groups filtered records by pharmacy identifier and computes the
// per-pharmacy revenue and product metrics. Tier product counts are pivoted
// against every tier observed in the filtered set, so a missing
// (pharmacy, tier) combination reads as zero rather than being absent.
// Output is sorted by pharmacy identifier, which also makes the result
// independent of input row order.
func Aggregate(records []model.TransactionRecord) []model.PharmacyAggregate {
	totals := make(map[string]float64)
	tier23 := make(map[string]float64)
	brands := make(map[string]map[string]map[string]bool) // pharmacy -> tier -> brand set
	tiersSeen := make(map[string]bool)

	for _, rec := range records {
		totals[rec.CodCRM] += rec.Revenue
		if rec.Tier == model.TierTwo || rec.Tier == model.TierThree {
			tier23[rec.CodCRM] += rec.Revenue
		}

		tiersSeen[rec.Tier] = true
		byTier, ok := brands[rec.CodCRM]
		if !ok {
			byTier = make(map[string]map[string]bool)
			brands[rec.CodCRM] = byTier
		}
		set, ok := byTier[rec.Tier]
		if !ok {
			set = make(map[string]bool)
			byTier[rec.Tier] = set
		}
		set[rec.Brand] = true
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tiers := make([]string, 0, len(tiersSeen))
	for tier := range tiersSeen {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)

	aggregates := make([]model.PharmacyAggregate, 0, len(ids))
	for _, id := range ids {
		counts := make(map[string]int, len(tiers))
		for _, tier := range tiers {
			counts[tier] = len(brands[id][tier])
		}
		aggregates = append(aggregates, model.PharmacyAggregate{
			CodCRM:            id,
			TotalRevenue:      totals[id],
			Tier23Revenue:     tier23[id],
			TierProductCounts: counts,
			Tier2And3Count:    counts[model.TierTwo] + counts[model.TierThree],
			Category:          model.CategoryUnassigned,
		})
	}

	return aggregates
}

// ObservedTiers returns the sorted tier labels present across a set of
// aggregates. Used to lay out tier count columns in exports and display.
func ObservedTiers(aggregates []model.PharmacyAggregate) []string {
	seen := make(map[string]bool)
	for i := range aggregates {
		for tier := range aggregates[i].TierProductCounts {
			seen[tier] = true
		}
	}
	tiers := make([]string, 0, len(seen))
	for tier := range seen {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	return tiers
}
