package symdiff

// Naive computes the same result as Compute by comparing every pair of
// records. It runs in O(n·m) and exists to cross-check Compute.
func Naive(keyProps []string, a, b []Record) ([]Record, error) {
	if len(keyProps) == 0 {
		return []Record{}, nil
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

	out := []Record{}
	out = appendUnmatched(out, left, right)
	out = appendUnmatched(out, right, left)
	return out, nil
}

// appendUnmatched appends the first record of every key in from that has no
// equal key in other and is not yet in out.
func appendUnmatched(out []Record, from, other []item) []Record {
	var kept []Key
	for _, x := range from {
		if containsKey(other, x.key) || containsKeyIn(kept, x.key) {
			continue
		}
		kept = append(kept, x.key)
		out = append(out, x.rec)
	}
	return out
}

func containsKey(items []item, k Key) bool {
	for _, it := range items {
		if Compare(it.key, k) == 0 {
			return true
		}
	}
	return false
}

func containsKeyIn(keys []Key, k Key) bool {
	for _, other := range keys {
		if Compare(other, k) == 0 {
			return true
		}
	}
	return false
}
