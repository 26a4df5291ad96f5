// Package corelib is a shim layer exposing the behaviour of core
// collection and string operations (take/drop, count, cycle,
// subset operators, case-insensitive comparison, lazy
// enumeration) as plain functions over []any, *Hash and string.
// Nothing in this package patches or wraps shared types; suites
// call these functions directly or through Catalog.
package corelib

import (
	"fmt"
	"reflect"
)

// ArgumentError reports an invalid argument or argument count.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// Kind implements the named error kind used by expectations.
func (e *ArgumentError) Kind() string { return "ArgumentError" }

// TypeError reports a value of the wrong type.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

// Kind implements the named error kind used by expectations.
func (e *TypeError) Kind() string { return "TypeError" }

// StopIteration is returned by Enumerator.Next past the end.
type StopIteration struct{}

func (*StopIteration) Error() string { return "iteration reached an end" }

// Kind implements the named error kind used by expectations.
func (*StopIteration) Kind() string { return "StopIteration" }

func argumentCount(given, expected int) error {
	return &ArgumentError{Message: fmt.Sprintf(
		"wrong number of arguments (given %d, expected %d)",
		given, expected,
	)}
}

func noConversion(v any, into string) error {
	return &TypeError{Message: fmt.Sprintf(
		"no implicit conversion of %s into %s", ClassName(v), into,
	)}
}

// ClassName names the class of v the way conversion errors
// print it.
func ClassName(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return "String"
	case *Hash:
		return "Hash"
	case *Enumerator:
		return "Enumerator"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "Integer"
	case reflect.Float32, reflect.Float64:
		return "Float"
	case reflect.Slice, reflect.Array:
		return "Array"
	case reflect.Map:
		return "Hash"
	}
	return fmt.Sprintf("%T", v)
}

// toInt converts integral numbers to int.
func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return int(rv.Uint()), true
	}
	return 0, false
}

func intArg(v any) (int, error) {
	n, ok := toInt(v)
	if !ok {
		return 0, noConversion(v, "Integer")
	}
	return n, nil
}
