package expect

import (
	"fmt"
	"reflect"
)

type reference struct {
	typ  reflect.Type
	ptr  uintptr
	size int
}

// referenceOf returns the identity of a reference value. Values
// without identity (numbers, strings, structs, empty slices)
// report ok == false.
func referenceOf(v any) (reference, bool) {
	if v == nil {
		return reference{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.UnsafePointer:
		return reference{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return reference{}, false
		}
		return reference{
			typ:  rv.Type(),
			ptr:  rv.Pointer(),
			size: rv.Len(),
		}, true
	}
	return reference{}, false
}

// Identical fails when actual and expected are not the same
// underlying instance.
func Identical(actual, expected any) error {
	ar, ok := referenceOf(actual)
	if !ok {
		return noIdentity(actual)
	}
	er, ok := referenceOf(expected)
	if !ok {
		return noIdentity(expected)
	}
	if ar != er {
		return fail(KindIdentity,
			"expected the same instance as %s, got a different %T",
			show(expected), actual)
	}
	return nil
}

// Distinct fails when actual and expected are the same
// underlying instance.
func Distinct(actual, expected any) error {
	ar, ok := referenceOf(actual)
	if !ok {
		return noIdentity(actual)
	}
	er, ok := referenceOf(expected)
	if !ok {
		return noIdentity(expected)
	}
	if ar == er {
		return fail(KindIdentity,
			"expected distinct instances, both are %T at %#x",
			actual, ar.ptr)
	}
	return nil
}

func noIdentity(v any) error {
	return fail(KindIdentity, "%s has no identity",
		fmt.Sprintf("value %s of type %T", show(v), v))
}
