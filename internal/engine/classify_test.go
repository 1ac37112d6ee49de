package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scattaneo/pharmapartner/internal/model"
)

func classifyOne(t *testing.T, revenue float64, thresholds model.Thresholds) model.Category {
	t.Helper()
	aggs := []model.PharmacyAggregate{{CodCRM: "PH-1", TotalRevenue: revenue}}
	Classify(aggs, thresholds)
	return aggs[0].Category
}

func TestClassify_ConcreteScenario(t *testing.T) {
	thresholds := model.Thresholds{SilverMin: 1000, GoldMin: 1000, GoldMax: 2000, PlatinumMin: 2000}

	aggs := []model.PharmacyAggregate{
		{CodCRM: "A", TotalRevenue: 1500},
		{CodCRM: "B", TotalRevenue: 2500},
		{CodCRM: "C", TotalRevenue: 500},
	}
	Classify(aggs, thresholds)

	// 1500 matches both the Silver and Gold rules; Gold is later, so it wins.
	assert.Equal(t, model.CategoryGold, aggs[0].Category)
	assert.Equal(t, model.CategoryPlatinum, aggs[1].Category)
	assert.Equal(t, model.CategoryUnassigned, aggs[2].Category)
}

func TestClassify_Boundaries(t *testing.T) {
	thresholds := model.Thresholds{SilverMin: 1000, GoldMin: 1000, GoldMax: 2000, PlatinumMin: 2000}

	tests := []struct {
		name    string
		revenue float64
		want    model.Category
	}{
		{"revenue equal to gold_min is Gold (inclusive lower bound)", 1000, model.CategoryGold},
		{"revenue equal to gold_max leaves Gold (exclusive upper bound)", 2000, model.CategoryPlatinum},
		{"revenue just below gold_max stays Gold", 1999.99, model.CategoryGold},
		{"revenue above platinum_min is Platinum", 2500, model.CategoryPlatinum},
		{"revenue below every threshold stays Unassigned", 999.99, model.CategoryUnassigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOne(t, tt.revenue, thresholds))
		})
	}
}

func TestClassify_SilverLowerBoundExclusive(t *testing.T) {
	// With gold and platinum out of reach, revenue exactly at silver_min must
	// not become Silver: the rule is strictly greater-than.
	thresholds := model.Thresholds{SilverMin: 1000, GoldMin: 5000, GoldMax: 6000, PlatinumMin: 7000}

	assert.Equal(t, model.CategoryUnassigned, classifyOne(t, 1000, thresholds))
	assert.Equal(t, model.CategorySilver, classifyOne(t, 1000.01, thresholds))
}

func TestClassify_LaterRuleWinsOnOverlap(t *testing.T) {
	// The Silver range covers the whole Gold range; rows inside the Gold
	// window must still come out Gold.
	thresholds := model.Thresholds{SilverMin: 100, GoldMin: 150, GoldMax: 200, PlatinumMin: 10000}

	assert.Equal(t, model.CategoryGold, classifyOne(t, 160, thresholds))
	assert.Equal(t, model.CategorySilver, classifyOne(t, 300, thresholds))

	// Platinum overwrites both when its bound is inside the Gold window.
	thresholds = model.Thresholds{SilverMin: 100, GoldMin: 150, GoldMax: 300, PlatinumMin: 200}
	assert.Equal(t, model.CategoryPlatinum, classifyOne(t, 250, thresholds))
	assert.Equal(t, model.CategoryGold, classifyOne(t, 180, thresholds))
}

func TestClassify_InvertedGoldRangeYieldsEmptyBucket(t *testing.T) {
	// gold_max below gold_min is accepted as supplied, the Gold bucket just
	// never matches.
	thresholds := model.Thresholds{SilverMin: 100, GoldMin: 2000, GoldMax: 1000, PlatinumMin: 5000}

	for _, revenue := range []float64{500, 1000, 1500, 2000, 2500} {
		assert.NotEqual(t, model.CategoryGold, classifyOne(t, revenue, thresholds),
			"revenue %v must not be Gold with an inverted range", revenue)
	}
}

func TestClassify_TotalCoverage(t *testing.T) {
	thresholds := model.DefaultThresholds()
	valid := map[model.Category]bool{
		model.CategorySilver:     true,
		model.CategoryGold:       true,
		model.CategoryPlatinum:   true,
		model.CategoryUnassigned: true,
	}

	aggs := []model.PharmacyAggregate{
		{CodCRM: "A", TotalRevenue: -50},
		{CodCRM: "B", TotalRevenue: 0},
		{CodCRM: "C", TotalRevenue: 999.99},
		{CodCRM: "D", TotalRevenue: 1000},
		{CodCRM: "E", TotalRevenue: 1999.99},
		{CodCRM: "F", TotalRevenue: 2000},
		{CodCRM: "G", TotalRevenue: 1e9},
	}
	Classify(aggs, thresholds)

	for _, agg := range aggs {
		assert.True(t, valid[agg.Category], "pharmacy %s got category %q", agg.CodCRM, agg.Category)
	}
}

func TestClassify_IgnoresTierMetrics(t *testing.T) {
	thresholds := model.DefaultThresholds()

	aggs := []model.PharmacyAggregate{
		{CodCRM: "A", TotalRevenue: 1500, Tier23Revenue: 1500, Tier2And3Count: 12,
			TierProductCounts: map[string]int{model.TierTwo: 8, model.TierThree: 4}},
		{CodCRM: "B", TotalRevenue: 1500},
	}
	Classify(aggs, thresholds)

	// Tier metrics are computed-but-informational; only total revenue drives
	// the category.
	assert.Equal(t, aggs[0].Category, aggs[1].Category)
}
