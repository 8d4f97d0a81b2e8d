package scatter

import "time"

// Result contains the outputs of one placement run.
type Result struct {
	// Ledger holds every committed item, in placement order.
	Ledger *Ledger `json:"-"`

	// Items mirrors the ledger contents for serialization.
	Items []*PlacedItem `json:"items"`

	// Categories holds the per-category outcomes, in configuration order.
	Categories []CategoryResult `json:"categories"`

	// Stats contains run-level timing and counters.
	Stats Stats `json:"stats"`
}

// CategoryResult is the partial-success summary for one category. A
// category that falls short of its target is still a success; Placed simply
// ends up below Target.
type CategoryResult struct {
	CategoryID string `json:"category_id"`

	// Target is the planner's drawn target count.
	Target int `json:"target"`

	// Placed is the number of items actually committed.
	Placed int `json:"placed"`

	// Attempts is the number of item attempts consumed.
	Attempts int `json:"attempts"`

	// Budget is the category's total attempt budget.
	Budget int `json:"budget"`

	// TierCommits counts commits per relaxation tier, keyed by tier name.
	TierCommits map[string]int `json:"tier_commits,omitempty"`

	// Skipped is true when the category had no items configured.
	Skipped bool `json:"skipped,omitempty"`

	// Infeasible is true when no candidate window existed at any tier,
	// even forced - the region cannot hold this category's objects at all.
	Infeasible bool `json:"infeasible,omitempty"`
}

// Stats contains placement run statistics.
type Stats struct {
	TotalPlaced   int           `json:"total_placed"`
	TotalAttempts int           `json:"total_attempts"`
	Duration      time.Duration `json:"duration"`
}
