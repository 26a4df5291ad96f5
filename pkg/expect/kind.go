package expect

import (
	"reflect"
	"strings"
)

// Type tags used by KindOf and by declaration files.
const (
	TagNil        = "nil"
	TagBool       = "bool"
	TagInteger    = "integer"
	TagFloat      = "float"
	TagString     = "string"
	TagArray      = "array"
	TagHash       = "hash"
	TagEnumerator = "enumerator"
	TagError      = "error"
	TagFunction   = "function"
	TagObject     = "object"
)

// Tagger lets a value declare its own type tag.
type Tagger interface {
	Tag() string
}

// Tag classifies v into one of the type tags.
func Tag(v any) string {
	if v == nil {
		return TagNil
	}
	if t, ok := v.(Tagger); ok {
		return t.Tag()
	}
	if _, ok := v.(error); ok {
		return TagError
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return TagBool
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint,
		reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return TagInteger
	case reflect.Float32, reflect.Float64:
		return TagFloat
	case reflect.String:
		return TagString
	case reflect.Slice, reflect.Array:
		return TagArray
	case reflect.Map:
		return TagHash
	case reflect.Func:
		return TagFunction
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return TagNil
		}
	}
	return TagObject
}

// KindOf fails when actual's type tag is not tag.
func KindOf(actual any, tag string) error {
	got := Tag(actual)
	if got == strings.ToLower(tag) {
		return nil
	}
	return fail(KindType, "expected %s to be a %s, got %s",
		show(actual), tag, got)
}

// TypeOf fails when actual's dynamic type is not T. When T is an
// interface type, any implementation passes.
func TypeOf[T any](actual any) error {
	if _, ok := actual.(T); ok {
		return nil
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	return fail(KindType, "expected %s to be a %s, got %T",
		show(actual), want, actual)
}
