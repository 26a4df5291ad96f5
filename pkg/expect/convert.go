package expect

import (
	"math"
	"reflect"
)

// numeric classifies v as a signed integer, unsigned integer,
// or float and returns it widened. ok is false for non-numbers.
func numeric(v any) (i int64, u uint64, f float64, kind byte, ok bool) {
	if v == nil {
		return 0, 0, 0, 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return rv.Int(), 0, float64(rv.Int()), 'i', true
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 0, rv.Uint(), float64(rv.Uint()), 'u', true
	case reflect.Float32, reflect.Float64:
		return 0, 0, rv.Float(), 'f', true
	}
	return 0, 0, 0, 0, false
}

// compareNumbers orders two numeric values. ok is false when
// either side is not a number. ordered is false when either
// side is NaN: NaN is neither less than, greater than, nor
// equal to any number, itself included.
func compareNumbers(a, b any) (c int, ordered, ok bool) {
	ai, au, af, ak, aok := numeric(a)
	bi, bu, bf, bk, bok := numeric(b)
	if !aok || !bok {
		return 0, false, false
	}
	switch {
	case ak == 'i' && bk == 'i':
		return cmpOrdered(ai, bi), true, true
	case ak == 'u' && bk == 'u':
		return cmpOrdered(au, bu), true, true
	case ak == 'i' && bk == 'u' && ai < 0:
		return -1, true, true
	case ak == 'u' && bk == 'i' && bi < 0:
		return 1, true, true
	case ak == 'i' && bk == 'u':
		return cmpOrdered(uint64(ai), bu), true, true
	case ak == 'u' && bk == 'i':
		return cmpOrdered(au, uint64(bi)), true, true
	}
	if math.IsNaN(af) || math.IsNaN(bf) {
		return 0, false, true
	}
	return cmpOrdered(af, bf), true, true
}

func cmpOrdered[T int64 | uint64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// toInt converts a numeric value to int.
func toInt(v any) (int, bool) {
	i, u, f, kind, ok := numeric(v)
	if !ok {
		return 0, false
	}
	switch kind {
	case 'i':
		return int(i), true
	case 'u':
		return int(u), true
	}
	return int(f), true
}

// sequence returns the reflected value of a slice or array.
func sequence(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}
