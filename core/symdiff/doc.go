// Package symdiff computes the symmetric difference of two record collections,
// where two records are considered equal when a caller-chosen subset of their
// fields (the key properties) hold equal values.
//
// The result holds one representative record for every key that appears in
// exactly one of the two inputs. A key present in both inputs is excluded no
// matter how often it repeats on either side: membership is tracked per input,
// not by count.
//
// # Algorithm
//
// Compute sorts copies of both inputs by key and walks them with two cursors:
//
//  1. When the left element is smaller, it has no partner on the right and
//     becomes a provisional result.
//  2. When the right element is smaller, the same happens for the right side.
//  3. When both keys are equal, the key is marked as seen on both sides and
//     both cursors advance.
//
// Whatever remains of the longer input after the loop is unmatched. A
// provisional result is retracted (tombstoned) as soon as its key has been
// observed in both inputs, and tombstones are dropped before returning.
//
// Degenerate inputs short-circuit: no key properties or two empty inputs give
// an empty result, and a single empty input gives the other input deduplicated
// by key.
//
// # Keys
//
// Key values are normalized before use. Numbers compare by value regardless of
// their Go type, []byte compares as a string, and time.Time compares by
// instant. nil orders before every other value. The key signature used for
// deduplication is a type-tagged, length-prefixed encoding of the normalized
// values, so distinct keys never share a signature.
//
// # Errors
//
// Malformed input fails fast: a record lacking a key property returns
// ErrMissingField, a value that cannot be ordered returns ErrUnsupportedValue,
// and a key property holding values of different kinds (a number in one record,
// a string in another) returns ErrMixedKinds. Inputs are never mutated.
//
// # Usage
//
//	diff, err := symdiff.Compute([]string{"a", "b"}, left, right)
//	if err != nil {
//	    return err
//	}
package symdiff
