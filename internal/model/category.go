package model

// Category is a partnership tier assigned to a pharmacy account.
type Category string

// Partnership category constants.
const (
	CategorySilver     Category = "Silver"
	CategoryGold       Category = "Gold"
	CategoryPlatinum   Category = "Platinum"
	CategoryUnassigned Category = "Unassigned"
)

// CategoryOrder is the fixed display order for pivot columns and summary
// rows. It governs presentation only; classification precedence is the rule
// order in the engine.
var CategoryOrder = []Category{
	CategorySilver,
	CategoryGold,
	CategoryPlatinum,
	CategoryUnassigned,
}

// Thresholds holds the revenue boundaries for one classification run.
// Values are accepted as supplied; a GoldMax below GoldMin simply yields an
// empty Gold bucket.
type Thresholds struct {
	SilverMin   float64 `json:"silver_min"`
	GoldMin     float64 `json:"gold_min"`
	GoldMax     float64 `json:"gold_max"`
	PlatinumMin float64 `json:"platinum_min"`
}

// DefaultThresholds returns the fixed fallback thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SilverMin:   1000,
		GoldMin:     1000,
		GoldMax:     2000,
		PlatinumMin: 2000,
	}
}
