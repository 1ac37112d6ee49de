// Package schema defines the input table contract: which source columns the
// engine requires, which are optional, and how raw file headers map onto
// them. Presence of required columns is validated once, at ingestion.
package schema

import (
	"fmt"

	"github.com/scattaneo/pharmapartner/internal/common"
)

// Canonical source column names. The scope-flag and cluster-check headers
// carry embedded whitespace (and a literal newline) in the production feed;
// they are kept verbatim so files load without a mapping override.
const (
	ColCodCRM       = "Cod CRM"
	ColChannel      = "Channel"
	ColCausale      = "Causale"
	ColCanale       = "Canale"
	ColProductType  = "Product_Type"
	ColScopeFlag    = "Out of Scope \nFilter"
	ColClusterCheck = " Cluster Check "
	ColTier         = "tier"
	ColBrand        = "Brand"
	ColRevenue      = "Net Price 1 Revenue (Imponibile)"
)

// Required lists the columns the engine cannot run without. The first four
// feed the fixed eligibility rule; the rest feed aggregation.
var Required = []string{
	ColChannel,
	ColCausale,
	ColScopeFlag,
	ColClusterCheck,
	ColCodCRM,
	ColTier,
	ColBrand,
	ColRevenue,
}

// Optional lists columns that are used only when present. A user filter on
// an absent optional column is skipped, not an error.
var Optional = []string{
	ColCanale,
	ColProductType,
}

// All returns every known column, required first.
func All() []string {
	cols := make([]string, 0, len(Required)+len(Optional))
	cols = append(cols, Required...)
	cols = append(cols, Optional...)
	return cols
}

// Validate checks that every required column is present. It returns a
// configuration error naming the first missing column; callers must abort
// the run without producing partial output.
func Validate(present map[string]bool) error {
	for _, col := range Required {
		if !present[col] {
			return fmt.Errorf("%w: %q", common.ErrMissingColumn, col)
		}
	}
	return nil
}
