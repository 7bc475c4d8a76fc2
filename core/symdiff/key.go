package symdiff

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	twoTo63 = float64(1 << 63)
	twoTo64 = twoTo63 * 2
)

// kind is the normalized representation of a key value.
type kind uint8

const (
	kindNull kind = iota
	kindBool
	kindInt   // fits in int64
	kindUint  // above math.MaxInt64
	kindFloat // fractional, infinite, or outside the integer ranges
	kindString
	kindTime
)

// class groups kinds that can be ordered against each other.
type class uint8

const (
	classNone class = iota
	classBool
	classNumber
	classString
	classTime
)

var classNames = map[class]string{
	classBool:   "bool",
	classNumber: "number",
	classString: "string",
	classTime:   "time",
}

func (k kind) class() class {
	switch k {
	case kindBool:
		return classBool
	case kindInt, kindUint, kindFloat:
		return classNumber
	case kindString:
		return classString
	case kindTime:
		return classTime
	default:
		return classNone
	}
}

type value struct {
	kind kind
	i    int64
	u    uint64
	f    float64
	s    string
	t    time.Time
}

// Key is the normalized key of a record under a fixed sequence of key properties.
type Key struct {
	values []value
	sig    string
}

// Signature returns the identity of the key. Two keys have the same signature
// exactly when Compare reports them equal.
func (k Key) Signature() string {
	return k.sig
}

// Len returns the number of key properties the key was built from.
func (k Key) Len() int {
	return len(k.values)
}

// String renders the key values for diagnostics.
func (k Key) String() string {
	parts := make([]any, len(k.values))
	for i, v := range k.values {
		parts[i] = v.display()
	}
	return fmt.Sprintf("%v", parts)
}

func (v value) display() any {
	switch v.kind {
	case kindNull:
		return nil
	case kindBool:
		return v.i == 1
	case kindInt:
		return v.i
	case kindUint:
		return v.u
	case kindFloat:
		return v.f
	case kindString:
		return v.s
	default:
		return v.t
	}
}

// Signature extracts the key of r under keyProps.
func Signature(keyProps []string, r Record) (Key, error) {
	kr := newKeyer(keyProps)
	return kr.key(r)
}

// Compare orders two keys lexicographically, the first key property having
// priority. It returns -1, 0 or +1. Keys must come from the same key
// properties; values of different classes order by class.
func Compare(x, y Key) int {
	for i := range x.values {
		if c := compareValues(x.values[i], y.values[i]); c != 0 {
			return c
		}
	}
	return 0
}

// keyer builds keys for one invocation and rejects a property whose values
// change class between records.
type keyer struct {
	props   []string
	classes []class
}

func newKeyer(props []string) *keyer {
	return &keyer{
		props:   props,
		classes: make([]class, len(props)),
	}
}

func (kr *keyer) key(r Record) (Key, error) {
	values := make([]value, len(kr.props))
	var sb strings.Builder
	for i, prop := range kr.props {
		raw, ok := r[prop]
		if !ok {
			return Key{}, fmt.Errorf("%w %q", ErrMissingField, prop)
		}
		v, err := normalize(raw)
		if err != nil {
			return Key{}, fmt.Errorf("property %q: %w", prop, err)
		}
		if c := v.kind.class(); c != classNone {
			switch kr.classes[i] {
			case classNone:
				kr.classes[i] = c
			case c:
			default:
				return Key{}, fmt.Errorf("%w: property %q holds %s and %s", ErrMixedKinds, prop, classNames[kr.classes[i]], classNames[c])
			}
		}
		values[i] = v
		v.encode(&sb)
	}
	return Key{values: values, sig: sb.String()}, nil
}

func normalize(raw any) (value, error) {
	switch x := raw.(type) {
	case nil:
		return value{kind: kindNull}, nil
	case bool:
		return boolValue(x), nil
	case int:
		return value{kind: kindInt, i: int64(x)}, nil
	case int8:
		return value{kind: kindInt, i: int64(x)}, nil
	case int16:
		return value{kind: kindInt, i: int64(x)}, nil
	case int32:
		return value{kind: kindInt, i: int64(x)}, nil
	case int64:
		return value{kind: kindInt, i: x}, nil
	case uint:
		return uintValue(uint64(x)), nil
	case uint8:
		return uintValue(uint64(x)), nil
	case uint16:
		return uintValue(uint64(x)), nil
	case uint32:
		return uintValue(uint64(x)), nil
	case uint64:
		return uintValue(x), nil
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return value{kind: kindInt, i: i}, nil
		}
		if u, err := strconv.ParseUint(string(x), 10, 64); err == nil {
			return uintValue(u), nil
		}
		f, err := x.Float64()
		if err != nil {
			return value{}, fmt.Errorf("%w: malformed number %q", ErrUnsupportedValue, string(x))
		}
		return floatValue(f)
	case string:
		return value{kind: kindString, s: x}, nil
	case []byte:
		return value{kind: kindString, s: string(x)}, nil
	case time.Time:
		return value{kind: kindTime, t: x}, nil
	}

	// Named types such as `type ID int`.
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Bool:
		return boolValue(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value{kind: kindInt, i: rv.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintValue(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return floatValue(rv.Float())
	case reflect.String:
		return value{kind: kindString, s: rv.String()}, nil
	default:
		return value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}

func boolValue(b bool) value {
	v := value{kind: kindBool}
	if b {
		v.i = 1
	}
	return v
}

func uintValue(u uint64) value {
	if u <= math.MaxInt64 {
		return value{kind: kindInt, i: int64(u)}
	}
	return value{kind: kindUint, u: u}
}

// floatValue stores integral floats as integers so that 3 and 3.0 share a signature.
func floatValue(f float64) (value, error) {
	if math.IsNaN(f) {
		return value{}, fmt.Errorf("%w: NaN", ErrUnsupportedValue)
	}
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		switch {
		case f >= -twoTo63 && f < twoTo63:
			return value{kind: kindInt, i: int64(f)}, nil
		case f >= twoTo63 && f < twoTo64:
			return value{kind: kindUint, u: uint64(f)}, nil
		}
	}
	return value{kind: kindFloat, f: f}, nil
}

// encode appends a self-delimiting encoding of v.
func (v value) encode(sb *strings.Builder) {
	switch v.kind {
	case kindNull:
		sb.WriteByte('n')
	case kindBool:
		if v.i == 1 {
			sb.WriteByte('t')
		} else {
			sb.WriteByte('f')
		}
	case kindInt:
		sb.WriteByte('i')
		sb.WriteString(strconv.FormatInt(v.i, 10))
		sb.WriteByte(';')
	case kindUint:
		sb.WriteByte('u')
		sb.WriteString(strconv.FormatUint(v.u, 10))
		sb.WriteByte(';')
	case kindFloat:
		sb.WriteByte('d')
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
		sb.WriteByte(';')
	case kindString:
		writeLengthPrefixed(sb, 's', v.s)
	case kindTime:
		writeLengthPrefixed(sb, 'T', v.t.UTC().Format(time.RFC3339Nano))
	}
}

func writeLengthPrefixed(sb *strings.Builder, tag byte, s string) {
	sb.WriteByte(tag)
	sb.WriteString(strconv.Itoa(len(s)))
	sb.WriteByte(':')
	sb.WriteString(s)
}

func compareValues(x, y value) int {
	switch {
	case x.kind == kindNull && y.kind == kindNull:
		return 0
	case x.kind == kindNull:
		return -1
	case y.kind == kindNull:
		return 1
	}

	cx, cy := x.kind.class(), y.kind.class()
	if cx != cy {
		return cmp.Compare(cx, cy)
	}

	switch cx {
	case classBool:
		return cmp.Compare(x.i, y.i)
	case classNumber:
		return compareNumbers(x, y)
	case classString:
		return strings.Compare(x.s, y.s)
	default:
		return x.t.Compare(y.t)
	}
}

func compareNumbers(x, y value) int {
	switch {
	case x.kind == kindFloat && y.kind == kindFloat:
		return cmp.Compare(x.f, y.f)
	case x.kind == kindFloat:
		return compareFloatInteger(x.f, y)
	case y.kind == kindFloat:
		return -compareFloatInteger(y.f, x)
	case x.kind == kindUint && y.kind == kindUint:
		return cmp.Compare(x.u, y.u)
	case x.kind == kindUint:
		return 1
	case y.kind == kindUint:
		return -1
	default:
		return cmp.Compare(x.i, y.i)
	}
}

// compareFloatInteger orders a float-kind value against an integer. Float-kind
// values are either fractional (and then well inside the int64 range) or
// outside both integer ranges, so the result is never 0.
func compareFloatInteger(f float64, n value) int {
	switch {
	case f >= twoTo64:
		return 1
	case f < -twoTo63:
		return -1
	case n.kind == kindUint:
		return -1
	case f < float64(n.i):
		return -1
	default:
		return 1
	}
}
