package scatter

import (
	"errors"

	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// PlacedItem is one committed placement. It is owned exclusively by the
// Ledger once committed and immutable afterwards; only a reset destroys it.
type PlacedItem struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	TemplateID   string    `json:"template_id"`
	Position     geom.Vec3 `json:"position"`
	QuarterTurns int       `json:"quarter_turns"`
	Tier         string    `json:"tier"`

	// Footprint is the exact measured footprint at commit time.
	Footprint geom.Box `json:"footprint"`

	handle scene.InstanceHandle
}

// Ledger is the authoritative ordered record of placed items. Insertion
// order is placement order. It is not safe for concurrent use; all
// placement mutation happens on one logical thread.
type Ledger struct {
	items []*PlacedItem

	// stale holds handles whose destroy failed on a prior drain; they are
	// retried on the next Reset so a failed destroy never loses the only
	// record of a live instance.
	stale []scene.InstanceHandle
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append commits an item. The ledger takes ownership.
func (l *Ledger) Append(item *PlacedItem) {
	l.items = append(l.items, item)
}

// Len returns the number of placed items.
func (l *Ledger) Len() int { return len(l.items) }

// Items returns the placed items in placement order. The returned slice is
// a copy; the entries are shared and must not be mutated.
func (l *Ledger) Items() []*PlacedItem {
	out := make([]*PlacedItem, len(l.items))
	copy(out, l.items)
	return out
}

// Reset destroys every placed instance and empties the ledger. The ledger
// is cleared even when individual destroys fail, so a reset never leaves a
// partially drained ledger observable; handles that fail to destroy are
// kept aside and retried on the next Reset, and the failures are joined
// into the returned error. Returns the number of instances destroyed.
func (l *Ledger) Reset(inst scene.Instantiator) (int, error) {
	pending := l.stale
	for _, item := range l.items {
		if item.handle != "" {
			pending = append(pending, item.handle)
		}
	}
	l.items = nil
	l.stale = nil

	var errs []error
	destroyed := 0
	for _, h := range pending {
		if err := inst.Destroy(h); err != nil {
			errs = append(errs, err)
			l.stale = append(l.stale, h)
			continue
		}
		destroyed++
	}
	return destroyed, errors.Join(errs...)
}
