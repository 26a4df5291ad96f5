package expect

import (
	"reflect"
	"regexp"
	"strings"
)

func evaluateEquals(def Definition, value any) error {
	return Equal(value, def.Value)
}

func evaluateNotEquals(def Definition, value any) error {
	return NotEqual(value, def.Value)
}

func evaluateKind(def Definition, value any) error {
	tag, ok := def.Value.(string)
	if !ok {
		return fail(KindType, "expected tag is not a string")
	}
	return KindOf(value, tag)
}

func evaluateNil(_ Definition, value any) error {
	if isNil(value) {
		return nil
	}
	return fail(KindEquality, "expected nil, got %s", show(value))
}

func evaluateNotNil(_ Definition, value any) error {
	if isNil(value) {
		return fail(KindEquality, "expected a value, got nil")
	}
	return nil
}

func evaluateTrue(_ Definition, value any) error {
	return Equal(value, true)
}

func evaluateFalse(_ Definition, value any) error {
	return Equal(value, false)
}

// evaluateMatches checks a string value against def.Pattern.
func evaluateMatches(def Definition, value any) error {
	str, ok := value.(string)
	if !ok {
		return fail(KindPattern,
			"expected a string, got %s", show(value))
	}
	re, err := regexp.Compile(def.Pattern)
	if err != nil {
		return fail(KindPattern,
			"invalid pattern /%s/: %v", def.Pattern, err)
	}
	if !re.MatchString(str) {
		return fail(KindPattern,
			"expected %q to match /%s/", str, def.Pattern)
	}
	return nil
}

// evaluateContains checks substring membership for strings and
// element membership for sequences and map keys.
func evaluateContains(def Definition, value any) error {
	if str, ok := value.(string); ok {
		sub, ok := def.Value.(string)
		if !ok {
			return fail(KindEquality,
				"expected value is not a string")
		}
		if strings.Contains(str, sub) {
			return nil
		}
		return fail(KindEquality,
			"%q does not contain %q", str, sub)
	}
	if rv, ok := sequence(value); ok {
		for i := range rv.Len() {
			if Equivalent(rv.Index(i).Interface(), def.Value) {
				return nil
			}
		}
		return fail(KindEquality, "%s does not contain %s",
			show(value), show(def.Value))
	}
	if m, ok := value.(Mapper); ok {
		value = m.ToMap()
	}
	if m, ok := mapping(value); ok {
		if _, found := lookupKey(m, def.Value); found {
			return nil
		}
		return fail(KindEquality, "%s has no key %s",
			show(value), show(def.Value))
	}
	return fail(KindEquality,
		"cannot check membership in %s", show(value))
}

func evaluateNotEmpty(_ Definition, value any) error {
	n, ok := length(value)
	if !ok {
		if isNil(value) {
			return fail(KindEquality, "value is nil")
		}
		return nil
	}
	if n == 0 {
		return fail(KindEquality, "%s is empty", show(value))
	}
	return nil
}

// evaluateCount checks the length of a string, sequence or map.
func evaluateCount(def Definition, value any) error {
	want, ok := toInt(def.Value)
	if !ok {
		return fail(KindEquality, "expected count is not a number")
	}
	n, ok := length(value)
	if !ok {
		return fail(KindEquality,
			"%s has no length", show(value))
	}
	if n != want {
		return fail(KindEquality,
			"expected %d elements, got %d", want, n)
	}
	return nil
}

func evaluateOrdering(def Definition, value any) error {
	var want Ordering
	switch v := def.Value.(type) {
	case string:
		o, err := ParseOrdering(v)
		if err != nil {
			return fail(KindOrdering, "%v", err)
		}
		want = o
	default:
		o, ok := ToOrdering(v)
		if !ok {
			return fail(KindOrdering,
				"expected ordering %s is not valid", show(v))
		}
		want = o
	}
	return ExpectOrdering(value, want)
}

func evaluateOneOf(def Definition, value any) error {
	for _, candidate := range def.Values {
		if Equivalent(value, candidate) {
			return nil
		}
	}
	return fail(KindEquality, "expected one of %s, got %s",
		show(def.Values), show(value))
}

// evaluateDistinct checks that a sequence holds no two
// structurally equal elements.
func evaluateDistinct(_ Definition, value any) error {
	rv, ok := sequence(value)
	if !ok {
		return fail(KindEquality,
			"expected a sequence, got %s", show(value))
	}
	for i := range rv.Len() {
		for j := i + 1; j < rv.Len(); j++ {
			if Equivalent(
				rv.Index(i).Interface(),
				rv.Index(j).Interface(),
			) {
				return fail(KindEquality,
					"duplicate %s at index %d and %d",
					show(rv.Index(i).Interface()), i, j)
			}
		}
	}
	return nil
}

// length returns the length of strings, sequences, maps and
// values exposing Len() int.
func length(v any) (int, bool) {
	if l, ok := v.(interface{ Len() int }); ok {
		return l.Len(), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return len([]rune(rv.String())), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
