package model

// Product tier labels used for the tier 2/3 sub-metrics.
const (
	TierTwo   = "Tier 2"
	TierThree = "Tier 3"
)

// PharmacyAggregate is one pharmacy's revenue and product metrics after
// aggregation, extended with its assigned category by the classifier.
// Each pharmacy identifier appears at most once per run.
type PharmacyAggregate struct {
	TierProductCounts map[string]int `json:"tier_product_counts"`
	CodCRM            string         `json:"cod_crm"`
	Category          Category       `json:"partnership_category"`
	TotalRevenue      float64        `json:"total_net1rev_imponibile"`
	Tier23Revenue     float64        `json:"tier23_net1rev_imponibile"`
	Tier2And3Count    int            `json:"tier_2_and_3_count"`
}

// TierCount returns the distinct-product count for a tier, zero when the
// tier never occurred for this pharmacy.
func (a *PharmacyAggregate) TierCount(tier string) int {
	return a.TierProductCounts[tier]
}
