package model

import "time"

// RunRecord is one stored engine run: the parameters it was computed with
// and the tables it produced. Listing runs omits the table payloads; GetRun
// returns the full record.
type RunRecord struct {
	CreatedAt  time.Time  `json:"timestamp"`
	Filters    Filters    `json:"filters"`
	ID         string     `json:"run_id"`
	Label      string     `json:"label"`
	Thresholds Thresholds `json:"thresholds"`
	Outputs    RunOutputs `json:"-"`
}
