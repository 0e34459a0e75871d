package diag

// Bag collects the diagnostics of one file up to a limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most limit diagnostics (at least one).
func NewBag(limit int) *Bag {
	limit = max(limit, 1)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), max: limit}
}

// Add stores d unless the limit is reached and reports whether it did.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Force stores d even past the limit. Used for bookkeeping entries such
// as timings that must not be crowded out by errors.
func (b *Bag) Force(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return b.Count(SevError) > 0
}

// Count returns how many diagnostics have severity sev or higher.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез, модифицировать нельзя.
func (b *Bag) Items() []Diagnostic { return b.items }
