package corelib

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"digital.vasic.corespec/pkg/expect"
)

// ParseBlock builds a block from its declarative form. A block
// is either a name ("identity", "even", "odd", "double",
// "pair_double", "length", "truthy", "to_s") or a single-key map
// whose key selects the block and whose value parametrises it:
//
//	{eq: 5}        element equals 5
//	{ne: 6}        element differs from 6
//	{lt: 3}        element orders before 3
//	{gt: 3}        element orders after 3
//	{len_lt: 5}    element length below 5
//	{append: "x"}  string element with "x" appended
//	{const: v}     always v
//	{key_eq: "c"}  [key, value] pair whose key equals "c"
func ParseBlock(spec any) (Mapper, error) {
	switch x := spec.(type) {
	case string:
		if fn, ok := namedBlocks[x]; ok {
			return fn, nil
		}
		return nil, &ArgumentError{Message: "unknown block " + x}
	case Mapper:
		return x, nil
	case func(any) any:
		return x, nil
	}

	m, ok := spec.(map[string]any)
	if !ok || len(m) != 1 {
		return nil, &ArgumentError{
			Message: fmt.Sprintf("malformed block %v", spec),
		}
	}
	for name, arg := range m {
		build, ok := paramBlocks[name]
		if !ok {
			return nil, &ArgumentError{Message: "unknown block " + name}
		}
		return build(arg)
	}
	return nil, nil
}

// Predicate adapts a block to a condition on its result.
func (fn Mapper) Predicate() Predicate {
	return func(v any) bool { return Truthy(fn(v)) }
}

var namedBlocks = map[string]Mapper{
	"identity": func(v any) any { return v },
	"truthy":   func(v any) any { return Truthy(v) },
	"to_s":     func(v any) any { return fmt.Sprint(v) },
	"even": func(v any) any {
		n, ok := toInt(v)
		return ok && n%2 == 0
	},
	"odd": func(v any) any {
		n, ok := toInt(v)
		return ok && n%2 != 0
	},
	"double": func(v any) any {
		if n, ok := toInt(v); ok {
			return n * 2
		}
		return nil
	},
	"pair_double": func(v any) any {
		if n, ok := toInt(v); ok {
			return []any{n, n * 2}
		}
		return nil
	},
	"length": func(v any) any {
		n, _ := length(v)
		return n
	},
}

var paramBlocks = map[string]func(arg any) (Mapper, error){
	"eq": func(arg any) (Mapper, error) {
		return func(v any) any { return expect.Equivalent(v, arg) }, nil
	},
	"ne": func(arg any) (Mapper, error) {
		return func(v any) any { return !expect.Equivalent(v, arg) }, nil
	},
	"lt": func(arg any) (Mapper, error) {
		return func(v any) any {
			return expect.Compare(v, arg) == expect.Less
		}, nil
	},
	"gt": func(arg any) (Mapper, error) {
		return func(v any) any {
			return expect.Compare(v, arg) == expect.Greater
		}, nil
	},
	"len_lt": func(arg any) (Mapper, error) {
		limit, err := intArg(arg)
		if err != nil {
			return nil, err
		}
		return func(v any) any {
			n, ok := length(v)
			return ok && n < limit
		}, nil
	},
	"append": func(arg any) (Mapper, error) {
		suffix, ok := arg.(string)
		if !ok {
			return nil, noConversion(arg, "String")
		}
		return func(v any) any { return fmt.Sprint(v) + suffix }, nil
	},
	"const": func(arg any) (Mapper, error) {
		return func(any) any { return arg }, nil
	},
	"key_eq": func(arg any) (Mapper, error) {
		want := fmt.Sprint(arg)
		return func(v any) any {
			p, ok := v.([]any)
			return ok && len(p) == 2 && fmt.Sprint(p[0]) == want
		}, nil
	},
}

func length(v any) (int, bool) {
	switch x := v.(type) {
	case string:
		return utf8.RuneCountInString(x), true
	case *Hash:
		return x.Len(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
