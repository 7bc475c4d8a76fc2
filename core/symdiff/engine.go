package symdiff

import (
	"fmt"
	"slices"
)

type item struct {
	rec Record
	key Key
}

// Compute returns one record for every key that is present in exactly one of
// a and b, comparing records by the fields named in keyProps. The order of the
// result is not meaningful. a and b are not modified.
func Compute(keyProps []string, a, b []Record) ([]Record, error) {
	entries, err := ComputeEntries(keyProps, a, b)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out, nil
}

// ComputeEntries is Compute with each result tagged by the input it came from.
func ComputeEntries(keyProps []string, a, b []Record) ([]Entry, error) {
	if len(keyProps) == 0 || (len(a) == 0 && len(b) == 0) {
		return []Entry{}, nil
	}

	kr := newKeyer(keyProps)
	left, err := keyItems(kr, SideA, a)
	if err != nil {
		return nil, err
	}
	right, err := keyItems(kr, SideB, b)
	if err != nil {
		return nil, err
	}

	switch {
	case len(left) == 0:
		return dedup(SideB, right), nil
	case len(right) == 0:
		return dedup(SideA, left), nil
	}

	return merge(left, right), nil
}

// keyItems copies records into a fresh slice alongside their keys.
func keyItems(kr *keyer, side Side, records []Record) ([]item, error) {
	items := make([]item, len(records))
	for i, rec := range records {
		key, err := kr.key(rec)
		if err != nil {
			return nil, fmt.Errorf("list %s, record %d: %w", side, i, err)
		}
		items[i] = item{rec: rec, key: key}
	}
	return items, nil
}

func dedup(side Side, items []item) []Entry {
	t := newTracker(len(items))
	for _, it := range items {
		t.offer(side, it.key, it.rec)
	}
	return t.entries()
}

func merge(left, right []item) []Entry {
	byKey := func(x, y item) int {
		return Compare(x.key, y.key)
	}
	slices.SortStableFunc(left, byKey)
	slices.SortStableFunc(right, byKey)

	t := newTracker(len(left) + len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		l, r := left[i], right[j]
		switch c := Compare(l.key, r.key); {
		case c < 0:
			// Everything from j on is larger, so l has no partner.
			t.offer(SideA, l.key, l.rec)
			i++
		case c > 0:
			t.offer(SideB, r.key, r.rec)
			j++
		default:
			t.match(l.key)
			i++
			j++
		}
	}

	for ; i < len(left); i++ {
		t.offer(SideA, left[i].key, left[i].rec)
	}
	for ; j < len(right); j++ {
		t.offer(SideB, right[j].key, right[j].rec)
	}

	return t.entries()
}
