package symdiff

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keysOf returns the sorted diagnostic keys of records.
func keysOf(t *testing.T, props []string, records []Record) []string {
	t.Helper()
	out := make([]string, 0, len(records))
	for _, r := range records {
		k, err := Signature(props, r)
		require.NoError(t, err)
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		props []string
		a     []Record
		b     []Record
		want  []string
	}{
		{
			name:  "Shared key excluded",
			props: []string{"a", "b"},
			a:     []Record{{"a": 6, "b": "foo"}, {"a": 3, "b": "x"}},
			b:     []Record{{"a": 6, "b": "foo"}, {"a": 5, "b": "y"}},
			want:  []string{"[3 x]", "[5 y]"},
		},
		{
			name:  "No key properties",
			props: []string{},
			a:     []Record{{"a": 1}},
			b:     []Record{{"a": 2}},
			want:  []string{},
		},
		{
			name:  "Empty left collapses duplicates",
			props: []string{"a"},
			a:     []Record{},
			b:     []Record{{"a": 1}, {"a": 1}, {"a": 2}},
			want:  []string{"[1]", "[2]"},
		},
		{
			name:  "Empty right collapses duplicates",
			props: []string{"a"},
			a:     []Record{{"a": 2}, {"a": 1}, {"a": 2}},
			b:     nil,
			want:  []string{"[1]", "[2]"},
		},
		{
			name:  "All key properties participate",
			props: []string{"a", "b"},
			a:     []Record{{"a": 3, "b": "adx"}},
			b:     []Record{{"a": 3, "b": "adderall"}},
			want:  []string{"[3 adderall]", "[3 adx]"},
		},
		{
			name:  "Set semantics not parity",
			props: []string{"a"},
			a:     []Record{{"a": 7}, {"a": 7}, {"a": 7}, {"a": 1}},
			b:     []Record{{"a": 7}},
			want:  []string{"[1]"},
		},
		{
			name:  "Duplicates on both sides",
			props: []string{"a"},
			a:     []Record{{"a": 1}, {"a": 1}, {"a": 2}},
			b:     []Record{{"a": 1}, {"a": 3}, {"a": 3}, {"a": 1}},
			want:  []string{"[2]", "[3]"},
		},
		{
			name:  "Both empty",
			props: []string{"a"},
			want:  []string{},
		},
		{
			name:  "Non key fields ignored",
			props: []string{"id"},
			a:     []Record{{"id": 1, "name": "left"}, {"id": 2}},
			b:     []Record{{"id": 1, "name": "right"}},
			want:  []string{"[2]"},
		},
		{
			name:  "Numbers compare across types",
			props: []string{"id"},
			a:     []Record{{"id": int64(3)}, {"id": uint8(4)}},
			b:     []Record{{"id": 3.0}, {"id": float32(4.5)}},
			want:  []string{"[4.5]", "[4]"},
		},
		{
			name:  "Nil is a value",
			props: []string{"a", "b"},
			a:     []Record{{"a": nil, "b": "x"}, {"a": 1, "b": "x"}},
			b:     []Record{{"a": nil, "b": "x"}},
			want:  []string{"[1 x]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.props, tt.a, tt.b)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, keysOf(t, tt.props, got))
		})
	}
}

func TestCompute_ConcatenationCollision(t *testing.T) {
	props := []string{"a", "b"}
	a := []Record{{"a": 1, "b": 23}, {"a": "x", "b": "yz"}}
	b := []Record{{"a": 12, "b": 3}, {"a": "xy", "b": "z"}}

	_, err := Compute(props, a, b)
	require.ErrorIs(t, err, ErrMixedKinds)

	a = []Record{{"a": 1, "b": 23}}
	b = []Record{{"a": 12, "b": 3}}
	got, err := Compute(props, a, b)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	a = []Record{{"a": "x", "b": "yz"}}
	b = []Record{{"a": "xy", "b": "z"}}
	got, err = Compute(props, a, b)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	a := []Record{{"a": 3}, {"a": 1}, {"a": 2}}
	b := []Record{{"a": 9}, {"a": 2}}

	_, err := Compute([]string{"a"}, a, b)
	require.NoError(t, err)

	assert.Equal(t, []Record{{"a": 3}, {"a": 1}, {"a": 2}}, a)
	assert.Equal(t, []Record{{"a": 9}, {"a": 2}}, b)
}

func TestCompute_FirstOccurrenceRepresentsKey(t *testing.T) {
	a := []Record{{"a": 1, "tag": "first"}, {"a": 1, "tag": "second"}, {"a": 0, "tag": "zero"}}
	b := []Record{{"a": 5}}

	got, err := Compute([]string{"a"}, a, b)
	require.NoError(t, err)

	tags := map[any]any{}
	for _, r := range got {
		tags[r["a"]] = r["tag"]
	}
	assert.Equal(t, "first", tags[1])
	assert.Len(t, got, 3)

	got, err = Compute([]string{"a"}, a, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0]["tag"])
}

func TestComputeEntries_Sides(t *testing.T) {
	a := []Record{{"id": 1}, {"id": 2}}
	b := []Record{{"id": 2}, {"id": 3}}

	entries, err := ComputeEntries([]string{"id"}, a, b)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	sides := map[any]Side{}
	for _, e := range entries {
		sides[e.Record["id"]] = e.Side
	}
	assert.Equal(t, SideA, sides[1])
	assert.Equal(t, SideB, sides[3])
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		a     []Record
		b     []Record
		want  error
		inMsg string
	}{
		{
			name:  "Missing field in left",
			a:     []Record{{"a": 1}, {"b": 2}},
			b:     []Record{{"a": 1}},
			want:  ErrMissingField,
			inMsg: "list a, record 1",
		},
		{
			name:  "Missing field with empty left",
			b:     []Record{{"b": 2}},
			want:  ErrMissingField,
			inMsg: "list b, record 0",
		},
		{
			name:  "Unsupported value",
			a:     []Record{{"a": []int{1}}},
			b:     []Record{{"a": 1}},
			want:  ErrUnsupportedValue,
			inMsg: "[]int",
		},
		{
			name:  "NaN",
			a:     []Record{{"a": 1}},
			b:     []Record{{"a": nan()}},
			want:  ErrUnsupportedValue,
			inMsg: "NaN",
		},
		{
			name:  "Mixed kinds across lists",
			a:     []Record{{"a": 1}},
			b:     []Record{{"a": "1"}},
			want:  ErrMixedKinds,
			inMsg: "number and string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute([]string{"a"}, tt.a, tt.b)
			assert.Nil(t, got)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.inMsg)
		})
	}
}

func TestCompute_EmptyKeyPropsSkipValidation(t *testing.T) {
	got, err := Compute(nil, []Record{{"x": []int{1}}}, []Record{{}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompute_Properties(t *testing.T) {
	props := []string{"a", "b"}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		a := randomRecords(rng, rng.Intn(25))
		b := randomRecords(rng, rng.Intn(25))

		t.Run(fmt.Sprintf("round-%d", round), func(t *testing.T) {
			ab, err := Compute(props, a, b)
			require.NoError(t, err)
			ba, err := Compute(props, b, a)
			require.NoError(t, err)
			naive, err := Naive(props, a, b)
			require.NoError(t, err)

			got := keysOf(t, props, ab)
			assert.Equal(t, keysOf(t, props, ba), got, "symmetry")
			assert.Equal(t, keysOf(t, props, naive), got, "naive reference")

			// Every key appears once.
			for i := 1; i < len(got); i++ {
				assert.NotEqual(t, got[i-1], got[i])
			}

			// Duplicating an element does not change the result.
			if len(a) > 0 {
				dup := append(append([]Record{}, a...), a[rng.Intn(len(a))])
				again, err := Compute(props, dup, b)
				require.NoError(t, err)
				assert.Equal(t, got, keysOf(t, props, again), "idempotence")
			}

			// No result key is present on both sides.
			inA := signatures(t, props, a)
			inB := signatures(t, props, b)
			for _, r := range ab {
				k, err := Signature(props, r)
				require.NoError(t, err)
				assert.False(t, inA[k.Signature()] && inB[k.Signature()], "intersection leaked: %s", k)
			}
		})
	}
}

func TestCompute_EmptinessLaws(t *testing.T) {
	props := []string{"a", "b"}
	rng := rand.New(rand.NewSource(7))
	b := randomRecords(rng, 40)

	got, err := Compute(props, nil, b)
	require.NoError(t, err)
	want, err := Naive(props, nil, b)
	require.NoError(t, err)
	assert.Equal(t, keysOf(t, props, want), keysOf(t, props, got))

	got, err = Compute(nil, b, b)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Compute(props, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func randomRecords(rng *rand.Rand, n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			"a":     rng.Intn(6),
			"b":     string(rune('p' + rng.Intn(3))),
			"extra": i,
		}
	}
	return out
}

func signatures(t *testing.T, props []string, records []Record) map[string]bool {
	t.Helper()
	out := make(map[string]bool, len(records))
	for _, r := range records {
		k, err := Signature(props, r)
		require.NoError(t, err)
		out[k.Signature()] = true
	}
	return out
}
