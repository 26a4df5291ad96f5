package corelib

import (
	"slices"
	"strconv"
	"strings"

	"digital.vasic.corespec/pkg/expect"
)

// Predicate is a block returning a condition.
type Predicate func(v any) bool

// Mapper is a block returning a transformed value.
type Mapper func(v any) any

// Truthy reports v's truthiness: only nil and false are false.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Drop returns the elements after the first n.
func Drop(seq []any, n int) ([]any, error) {
	if n < 0 {
		return nil, &ArgumentError{Message: "attempt to drop negative size"}
	}
	if n > len(seq) {
		n = len(seq)
	}
	return slices.Clone(seq[n:]), nil
}

// DropArgs is Drop with a dynamic argument list: exactly one
// integer argument is accepted.
func DropArgs(seq []any, args ...any) ([]any, error) {
	if len(args) != 1 {
		return nil, argumentCount(len(args), 1)
	}
	n, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	return Drop(seq, n)
}

// DropWhile drops leading elements while pred holds.
func DropWhile(seq []any, pred Predicate) []any {
	for i, v := range seq {
		if !pred(v) {
			return slices.Clone(seq[i:])
		}
	}
	return []any{}
}

// Take returns the first n elements.
func Take(seq []any, n int) ([]any, error) {
	if n < 0 {
		return nil, &ArgumentError{Message: "attempt to take negative size"}
	}
	return slices.Clone(seq[:min(n, len(seq))]), nil
}

// TakeWhile returns leading elements while pred holds.
func TakeWhile(seq []any, pred Predicate) []any {
	for i, v := range seq {
		if !pred(v) {
			return slices.Clone(seq[:i])
		}
	}
	return slices.Clone(seq)
}

// Count returns the number of elements.
func Count(seq []any) int { return len(seq) }

// CountOf returns the number of elements equal to item.
func CountOf(seq []any, item any) int {
	return CountIf(seq, func(v any) bool {
		return expect.Equivalent(v, item)
	})
}

// CountIf returns the number of elements satisfying pred.
func CountIf(seq []any, pred Predicate) int {
	n := 0
	for _, v := range seq {
		if pred(v) {
			n++
		}
	}
	return n
}

// Cycle repeats seq n times lazily; a negative n repeats
// forever.
func Cycle(seq []any, n int) *Enumerator {
	snapshot := slices.Clone(seq)
	src := func(yield func(any) bool) {
		if len(snapshot) == 0 {
			return
		}
		for round := 0; n < 0 || round < n; round++ {
			for _, v := range snapshot {
				if !yield(v) {
					return
				}
			}
		}
	}
	return NewEnumerator(src, func() (int, bool) {
		if n < 0 {
			return 0, false
		}
		return n * len(snapshot), true
	})
}

// CycleN calls fn for every element, n times over, and returns
// nil when the loop completes.
func CycleN(seq []any, n int, fn func(any)) any {
	Cycle(seq, n).Each(fn)
	return nil
}

// Detect returns the first element satisfying pred. When none
// does, it returns ifNone() if given, otherwise nil.
func Detect(seq []any, pred Predicate, ifNone func() any) any {
	for _, v := range seq {
		if pred(v) {
			return v
		}
	}
	if ifNone != nil {
		return ifNone()
	}
	return nil
}

// Collect maps every element through fn.
func Collect(seq []any, fn Mapper) []any {
	out := make([]any, len(seq))
	for i, v := range seq {
		out[i] = fn(v)
	}
	return out
}

// CollectConcat maps every element and flattens one level of
// sequence results.
func CollectConcat(seq []any, fn Mapper) []any {
	out := []any{}
	for _, v := range seq {
		r := fn(v)
		if inner, ok := r.([]any); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, r)
	}
	return out
}

// All reports whether pred holds for every element. A nil pred
// tests truthiness.
func All(seq []any, pred Predicate) bool {
	if pred == nil {
		pred = Truthy
	}
	for _, v := range seq {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Any reports whether pred holds for some element. A nil pred
// tests truthiness.
func Any(seq []any, pred Predicate) bool {
	if pred == nil {
		pred = Truthy
	}
	return slices.ContainsFunc(seq, pred)
}

// Each returns a lazy enumerator over seq.
func Each(seq []any) *Enumerator { return Enumerate(seq) }

// EachWithIndex calls fn with every element and its index.
func EachWithIndex(seq []any, fn func(v any, i int)) []any {
	for i, v := range seq {
		fn(v, i)
	}
	return seq
}

// EachWithObject calls fn with every element and memo, then
// returns memo.
func EachWithObject(seq []any, memo any, fn func(v, memo any)) any {
	return Enumerate(seq).WithObject(memo, fn)
}

// Words splits s on whitespace, like a %W() literal.
func Words(s string) []any {
	fields := strings.Fields(s)
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}

// Range returns the integers from..to inclusive.
func Range(from, to int) []any {
	out := []any{}
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
