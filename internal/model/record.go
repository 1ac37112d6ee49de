// Package model defines the core domain types for the partnership tiering engine.
package model

// TransactionRecord is one raw sales row from the uploaded extract.
// Records are read-only input; the engine never mutates them.
type TransactionRecord struct {
	CodCRM       string  // pharmacy account identifier
	Channel      string
	Causale      string  // transaction type; only "Vendita" rows are in scope
	Canale       string  // optional in the source feed
	ProductType  string  // optional in the source feed
	ScopeFlag    string
	ClusterCheck string  // market segment code
	Tier         string  // product tier label, e.g. "Tier 2"
	Brand        string
	Revenue      float64 // Net Price 1 Revenue (Imponibile)
}

// Table is an in-memory input dataset: the parsed records plus the set of
// source columns that were actually present in the file. Column presence is
// recorded so optional-column filters can distinguish "column absent" from
// "no matching values".
type Table struct {
	Columns map[string]bool
	Records []TransactionRecord
}

// HasColumn reports whether the named source column existed in the input.
func (t *Table) HasColumn(name string) bool {
	return t.Columns[name]
}
