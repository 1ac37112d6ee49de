package engine

import "github.com/scattaneo/pharmapartner/internal/model"

// thresholdRule assigns a category when its condition holds. Rules are
// evaluated in a fixed order and the last matching rule wins, so overlapping
// threshold ranges resolve by position, not by magnitude.
type thresholdRule struct {
	matches  func(revenue float64) bool
	category model.Category
}

// rulesFor builds the ordered rule list for one run's thresholds. The order
// Silver, Gold, Platinum is part of the contract: a revenue matching both
// the Silver and Gold conditions is Gold, and anything matching Platinum is
// Platinum. Threshold values are used exactly as supplied.
func rulesFor(t model.Thresholds) []thresholdRule {
	return []thresholdRule{
		{
			category: model.CategorySilver,
			matches:  func(rev float64) bool { return rev > t.SilverMin },
		},
		{
			category: model.CategoryGold,
			matches:  func(rev float64) bool { return rev >= t.GoldMin && rev < t.GoldMax },
		},
		{
			category: model.CategoryPlatinum,
			matches:  func(rev float64) bool { return rev >= t.PlatinumMin },
		},
	}
}

// Classify assigns exactly one category to every aggregate based on its
// total revenue. Pharmacies matching no rule stay Unassigned. The tier
// product counts and tier 2/3 revenue are informational and never consulted.
func Classify(aggregates []model.PharmacyAggregate, thresholds model.Thresholds) {
	rules := rulesFor(thresholds)
	for i := range aggregates {
		category := model.CategoryUnassigned
		for _, rule := range rules {
			if rule.matches(aggregates[i].TotalRevenue) {
				category = rule.category
			}
		}
		aggregates[i].Category = category
	}
}
