package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/schema"
)

// fullTable builds an input table that carries every known column.
func fullTable(records ...model.TransactionRecord) *model.Table {
	columns := make(map[string]bool)
	for _, col := range schema.All() {
		columns[col] = true
	}
	return &model.Table{Columns: columns, Records: records}
}

func TestFilterRecords_FixedRule(t *testing.T) {
	inScope := salesRecord("PH-1", model.TierTwo, "BrandA", 100)

	wrongChannel := inScope
	wrongChannel.Channel = "Hospital"

	wrongCausale := inScope
	wrongCausale.Causale = "Reso"

	outOfScope := inScope
	outOfScope.ScopeFlag = "Out of scope"

	wrongCluster := inScope
	wrongCluster.ClusterCheck = " 3.M "

	largeCluster := inScope
	largeCluster.CodCRM = "PH-2"
	largeCluster.ClusterCheck = " 2.L "

	got := FilterRecords(fullTable(inScope, wrongChannel, wrongCausale, outOfScope, wrongCluster, largeCluster), nil)

	require.Len(t, got, 2)
	assert.Equal(t, "PH-1", got[0].CodCRM)
	assert.Equal(t, "PH-2", got[1].CodCRM)
}

func TestFilterRecords_UserFilters(t *testing.T) {
	rx := salesRecord("PH-1", model.TierTwo, "BrandA", 100)
	rx.ProductType = "Rx"
	rx.Canale = "Direct"

	otc := salesRecord("PH-2", model.TierTwo, "BrandB", 50)
	otc.ProductType = "OTC"
	otc.Canale = "Direct"

	wholesale := salesRecord("PH-3", model.TierTwo, "BrandC", 25)
	wholesale.ProductType = "Rx"
	wholesale.Canale = "Wholesale"

	table := fullTable(rx, otc, wholesale)

	t.Run("single column includes listed values only", func(t *testing.T) {
		got := FilterRecords(table, model.Filters{schema.ColProductType: {"Rx"}})
		require.Len(t, got, 2)
		assert.Equal(t, "PH-1", got[0].CodCRM)
		assert.Equal(t, "PH-3", got[1].CodCRM)
	})

	t.Run("columns combine with AND", func(t *testing.T) {
		got := FilterRecords(table, model.Filters{
			schema.ColProductType: {"Rx"},
			schema.ColCanale:      {"Direct"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "PH-1", got[0].CodCRM)
	})

	t.Run("values combine with OR", func(t *testing.T) {
		got := FilterRecords(table, model.Filters{schema.ColProductType: {"Rx", "OTC"}})
		assert.Len(t, got, 3)
	})

	t.Run("empty inclusion list means no constraint", func(t *testing.T) {
		got := FilterRecords(table, model.Filters{schema.ColProductType: {}})
		assert.Len(t, got, 3)
	})
}

func TestFilterRecords_AbsentColumnSkipped(t *testing.T) {
	rec := salesRecord("PH-1", model.TierTwo, "BrandA", 100)
	table := fullTable(rec)
	delete(table.Columns, schema.ColCanale)

	// A filter on a column the input never had is treated as no constraint.
	got := FilterRecords(table, model.Filters{schema.ColCanale: {"Direct"}})
	assert.Len(t, got, 1)
}

func TestFilterRecords_NoMatchesIsNotAnError(t *testing.T) {
	rec := salesRecord("PH-1", model.TierTwo, "BrandA", 100)
	rec.Channel = "Hospital"

	got := FilterRecords(fullTable(rec), nil)
	assert.Empty(t, got)
}
