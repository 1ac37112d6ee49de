package engine

import (
	"log/slog"

	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/schema"
)

// Fixed eligibility rule: the values a row must carry to count as a merged
// pharmacy record, applied after any user filters.
const (
	channelIndependent = "Independent Pharmacies"
	causaleVendita     = "Vendita"
	scopeInScope       = "In scope"
	clusterTop         = " 1.EL "
	clusterLarge       = " 2.L "
)

// FilterRecords selects the in-scope rows of a table. User filters are
// AND-combined across columns and OR-combined within one; a filter on a
// column absent from the input is skipped. The fixed eligibility rule then
// applies regardless of user filters. Zero surviving rows is not an error.
func FilterRecords(table *model.Table, filters model.Filters) []model.TransactionRecord {
	sets := buildFilterSets(table, filters)

	matched := make([]model.TransactionRecord, 0, len(table.Records))
	for _, rec := range table.Records {
		if !passesFilters(rec, sets) {
			continue
		}
		if !eligible(rec) {
			continue
		}
		matched = append(matched, rec)
	}

	slog.Debug("filtered records",
		"input_rows", len(table.Records),
		"matched_rows", len(matched),
		"user_filters", len(sets))

	return matched
}

// buildFilterSets turns inclusion lists into lookup sets, dropping filters
// on columns the input does not carry.
func buildFilterSets(table *model.Table, filters model.Filters) map[string]map[string]bool {
	sets := make(map[string]map[string]bool)
	for col, values := range filters {
		if len(values) == 0 {
			continue
		}
		if !table.HasColumn(col) {
			slog.Debug("skipping filter on absent column", "column", col)
			continue
		}
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		sets[col] = set
	}
	return sets
}

func passesFilters(rec model.TransactionRecord, sets map[string]map[string]bool) bool {
	for col, set := range sets {
		val, ok := fieldValue(rec, col)
		if !ok || !set[val] {
			return false
		}
	}
	return true
}

func eligible(rec model.TransactionRecord) bool {
	return rec.Channel == channelIndependent &&
		rec.Causale == causaleVendita &&
		rec.ScopeFlag == scopeInScope &&
		(rec.ClusterCheck == clusterTop || rec.ClusterCheck == clusterLarge)
}

// fieldValue reads a record's value for a named source column.
func fieldValue(rec model.TransactionRecord, col string) (string, bool) {
	switch col {
	case schema.ColCodCRM:
		return rec.CodCRM, true
	case schema.ColChannel:
		return rec.Channel, true
	case schema.ColCausale:
		return rec.Causale, true
	case schema.ColCanale:
		return rec.Canale, true
	case schema.ColProductType:
		return rec.ProductType, true
	case schema.ColScopeFlag:
		return rec.ScopeFlag, true
	case schema.ColClusterCheck:
		return rec.ClusterCheck, true
	case schema.ColTier:
		return rec.Tier, true
	case schema.ColBrand:
		return rec.Brand, true
	}
	return "", false
}
