package expect

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Mapper is implemented by map-like values (such as ordered
// hashes) that compare by their key/value content.
type Mapper interface {
	ToMap() map[any]any
}

var exportAll = cmp.Exporter(func(reflect.Type) bool {
	return true
})

// Equal fails when actual is not structurally equal to
// expected. Sequences must have the same length and equal
// elements at each index; maps must have the same key set and
// equal values per key regardless of order; numbers compare by
// value across integer and float types. The diagnostic names
// the first differing index or key.
func Equal(actual, expected any) error {
	where, detail, equal := diff(actual, expected)
	if equal {
		return nil
	}
	msg := fmt.Sprintf(
		"expected %s, got %s", show(expected), show(actual),
	)
	switch {
	case where != "":
		msg += fmt.Sprintf(" (%s: %s)", where, detail)
	case strings.HasPrefix(detail, "-expected"):
		msg += "\n" + detail
	case detail != "":
		msg = detail
	}
	return fail(KindEquality, "%s", msg)
}

// NotEqual fails when actual is structurally equal to expected.
func NotEqual(actual, expected any) error {
	if _, _, equal := diff(actual, expected); equal {
		return fail(KindEquality,
			"expected value other than %s", show(expected))
	}
	return nil
}

// Equivalent reports structural equality without building a
// diagnostic.
func Equivalent(a, b any) bool {
	_, _, equal := diff(a, b)
	return equal
}

// diff walks two values and returns the location of the first
// difference, a description of it, and whether they are equal.
func diff(actual, expected any) (string, string, bool) {
	if m, ok := actual.(Mapper); ok && !isNil(actual) {
		actual = m.ToMap()
	}
	if m, ok := expected.(Mapper); ok && !isNil(expected) {
		expected = m.ToMap()
	}

	if actual == nil || expected == nil {
		if isNil(actual) && isNil(expected) {
			return "", "", true
		}
		return "", leafMessage(actual, expected), false
	}

	if c, ordered, ok := compareNumbers(actual, expected); ok {
		if ordered && c == 0 {
			return "", "", true
		}
		return "", leafMessage(actual, expected), false
	}

	as, aSeq := sequence(actual)
	es, eSeq := sequence(expected)
	if aSeq && eSeq {
		return diffSequences(as, es)
	}

	am, aMap := mapping(actual)
	em, eMap := mapping(expected)
	if aMap && eMap {
		return diffMaps(am, em)
	}

	if reflect.TypeOf(actual) != reflect.TypeOf(expected) {
		return "", fmt.Sprintf(
			"expected %s (%T), got %s (%T)",
			show(expected), expected, show(actual), actual,
		), false
	}

	if cmp.Equal(actual, expected, exportAll) {
		return "", "", true
	}

	if reflect.TypeOf(actual).Kind() == reflect.Struct ||
		reflect.TypeOf(actual).Kind() == reflect.Pointer {
		return "", "-expected +actual:\n" + cmp.Diff(
			expected, actual, exportAll,
		), false
	}
	return "", leafMessage(actual, expected), false
}

func diffSequences(actual, expected reflect.Value) (string, string, bool) {
	n := actual.Len()
	if expected.Len() < n {
		n = expected.Len()
	}
	for i := 0; i < n; i++ {
		where, detail, equal := diff(
			actual.Index(i).Interface(),
			expected.Index(i).Interface(),
		)
		if !equal {
			return joinWhere(fmt.Sprintf("index %d", i), where),
				detail, false
		}
	}
	if actual.Len() != expected.Len() {
		return "length", fmt.Sprintf(
			"expected %d, got %d", expected.Len(), actual.Len(),
		), false
	}
	return "", "", true
}

func diffMaps(actual, expected map[any]any) (string, string, bool) {
	for _, ek := range sortedKeys(expected) {
		ak, found := lookupKey(actual, ek)
		if !found {
			return fmt.Sprintf("key %s", show(ek)),
				"missing", false
		}
		where, detail, equal := diff(actual[ak], expected[ek])
		if !equal {
			return joinWhere(
				fmt.Sprintf("key %s", show(ek)), where,
			), detail, false
		}
	}
	for _, ak := range sortedKeys(actual) {
		if _, found := lookupKey(expected, ak); !found {
			return fmt.Sprintf("key %s", show(ak)),
				"unexpected", false
		}
	}
	return "", "", true
}

// lookupKey finds the key of m structurally equal to k.
func lookupKey(m map[any]any, k any) (any, bool) {
	if _, ok := m[k]; ok {
		return k, true
	}
	for candidate := range m {
		if _, _, equal := diff(candidate, k); equal {
			return candidate, true
		}
	}
	return nil, false
}

// mapping converts any Go map into map[any]any.
func mapping(v any) (map[any]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[any]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().Interface()] = iter.Value().Interface()
	}
	return out, true
}

func sortedKeys(m map[any]any) []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func joinWhere(outer, inner string) string {
	if inner == "" {
		return outer
	}
	return outer + ", " + inner
}

func leafMessage(actual, expected any) string {
	return fmt.Sprintf(
		"expected %s, got %s", show(expected), show(actual),
	)
}

// show renders a value the way diagnostics print it.
func show(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	}
	if isNil(v) {
		return "nil"
	}
	if x, ok := v.(fmt.Stringer); ok {
		return x.String()
	}
	if rv, ok := sequence(v); ok {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = show(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if m, ok := mapping(v); ok {
		keys := sortedKeys(m)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = show(k) + ": " + show(m[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}
