package symdiff

// seenState records which inputs a key has been observed in.
type seenState [2]bool

func (s seenState) both() bool {
	return s[SideA] && s[SideB]
}

type slot struct {
	entry   Entry
	removed bool
}

// tracker holds the per-invocation bookkeeping of the merge scan: which sides
// each key has been seen on, the provisional results, and where each key's
// provisional result lives so it can be retracted.
type tracker struct {
	seen     map[string]seenState
	inserted map[string]int
	slots    []slot
}

func newTracker(capacity int) *tracker {
	return &tracker{
		seen:     make(map[string]seenState, capacity),
		inserted: make(map[string]int, capacity),
		slots:    make([]slot, 0, capacity),
	}
}

// offer proposes rec as a member of the difference and then marks its key as
// seen on side. A key that was never seen becomes a provisional result; a key
// already observed on both sides loses its provisional result.
func (t *tracker) offer(side Side, key Key, rec Record) {
	sig := key.Signature()
	state, seen := t.seen[sig]
	if state.both() {
		t.retract(sig)
	}
	if !seen {
		t.inserted[sig] = len(t.slots)
		t.slots = append(t.slots, slot{entry: Entry{Record: rec, Side: side, Key: key}})
	}
	t.mark(side, sig)
}

// match records a key found at the head of both inputs.
func (t *tracker) match(key Key) {
	sig := key.Signature()
	t.mark(SideA, sig)
	t.mark(SideB, sig)
	t.retract(sig)
}

func (t *tracker) mark(side Side, sig string) {
	state := t.seen[sig]
	state[side] = true
	t.seen[sig] = state
}

func (t *tracker) retract(sig string) {
	if pos, ok := t.inserted[sig]; ok {
		t.slots[pos].removed = true
	}
}

// entries returns the surviving provisional results in insertion order.
func (t *tracker) entries() []Entry {
	out := make([]Entry, 0, len(t.slots))
	for _, s := range t.slots {
		if !s.removed {
			out = append(out, s.entry)
		}
	}
	return out
}
