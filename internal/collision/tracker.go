package collision

import (
	"github.com/arloliu/luxsig/errs"
)

// Tracker records series labels and detects repeated labels and label hash
// collisions. Either makes lookups of a series by label or by ID ambiguous.
type Tracker struct {
	byHash       map[uint64]string // Hash → first label with that hash
	seen         map[string]struct{}
	labels       []string // Ordered list of tracked labels
	duplicates   []string
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byHash: make(map[uint64]string),
		seen:   make(map[string]struct{}),
	}
}

// Track records label with its hash.
//
// Returns errs.ErrDuplicateLabel if the same label was tracked before; the label
// is still recorded as a duplicate. Distinct labels sharing a hash are not an
// error, they only set the collision flag.
func (t *Tracker) Track(label string, hash uint64) error {
	if _, ok := t.seen[label]; ok {
		t.duplicates = append(t.duplicates, label)
		return errs.ErrDuplicateLabel
	}
	t.seen[label] = struct{}{}

	if existing, ok := t.byHash[hash]; ok && existing != label {
		t.hasCollision = true
	} else if !ok {
		t.byHash[hash] = label
	}
	t.labels = append(t.labels, label)

	return nil
}

// HasCollision returns true if two distinct labels share a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Labels returns the distinct labels in the order they were tracked.
func (t *Tracker) Labels() []string {
	return t.labels
}

// Duplicates returns the labels rejected by Track, in order.
func (t *Tracker) Duplicates() []string {
	return t.duplicates
}

// Count returns the number of distinct labels.
func (t *Tracker) Count() int {
	return len(t.labels)
}

// Reset clears all tracked labels and collision state.
func (t *Tracker) Reset() {
	// Clear maps but preserve capacity to avoid allocations
	clear(t.byHash)
	clear(t.seen)
	t.labels = t.labels[:0]
	t.duplicates = t.duplicates[:0]
	t.hasCollision = false
}
