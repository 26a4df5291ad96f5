package corelib

import (
	"iter"
	"slices"
)

// Enumerator is a lazy, restartable traversal. External
// iteration (Next, Peek) keeps a cursor; internal iteration
// (Each, ToSlice) always starts from the beginning.
type Enumerator struct {
	source iter.Seq[any]
	size   func() (int, bool)

	next    func() (any, bool)
	stop    func()
	peeked  bool
	peekVal any
}

// NewEnumerator wraps seq. size may be nil when the length is
// unknown or infinite.
func NewEnumerator(
	seq iter.Seq[any],
	size func() (int, bool),
) *Enumerator {
	if size == nil {
		size = func() (int, bool) { return 0, false }
	}
	return &Enumerator{source: seq, size: size}
}

// Enumerate returns an Enumerator over a snapshot of seq.
func Enumerate(seq []any) *Enumerator {
	snapshot := slices.Clone(seq)
	return NewEnumerator(slices.Values(snapshot), func() (int, bool) {
		return len(snapshot), true
	})
}

// Tag reports the value's type tag to expectations.
func (e *Enumerator) Tag() string { return "enumerator" }

// All returns the underlying sequence.
func (e *Enumerator) All() iter.Seq[any] { return e.source }

// Next returns the next element, or *StopIteration once the
// traversal is exhausted.
func (e *Enumerator) Next() (any, error) {
	if e.peeked {
		e.peeked = false
		v := e.peekVal
		e.peekVal = nil
		return v, nil
	}
	if e.next == nil {
		e.next, e.stop = iter.Pull(e.source)
	}
	v, ok := e.next()
	if !ok {
		return nil, &StopIteration{}
	}
	return v, nil
}

// Peek returns the next element without advancing.
func (e *Enumerator) Peek() (any, error) {
	if e.peeked {
		return e.peekVal, nil
	}
	v, err := e.Next()
	if err != nil {
		return nil, err
	}
	e.peeked, e.peekVal = true, v
	return v, nil
}

// Rewind resets the cursor to the beginning.
func (e *Enumerator) Rewind() *Enumerator {
	if e.stop != nil {
		e.stop()
	}
	e.next, e.stop = nil, nil
	e.peeked, e.peekVal = false, nil
	return e
}

// Close releases the cursor. The enumerator remains usable.
func (e *Enumerator) Close() { e.Rewind() }

// Size returns the number of elements when it is known without
// traversal. ok is false for lazy or infinite sources.
func (e *Enumerator) Size() (int, bool) { return e.size() }

// Each calls fn with every element from the beginning.
func (e *Enumerator) Each(fn func(any)) {
	for v := range e.source {
		fn(v)
	}
}

// ToSlice collects every element. It never terminates for
// infinite sources.
func (e *Enumerator) ToSlice() []any {
	out := []any{}
	for v := range e.source {
		out = append(out, v)
	}
	return out
}

// Take collects at most n elements from the beginning.
func (e *Enumerator) Take(n int) []any {
	out := []any{}
	if n <= 0 {
		return out
	}
	for v := range e.source {
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

// WithIndex pairs every element with its index as []any{v, i}.
func (e *Enumerator) WithIndex() *Enumerator {
	src := e.source
	return NewEnumerator(func(yield func(any) bool) {
		i := 0
		for v := range src {
			if !yield([]any{v, i}) {
				return
			}
			i++
		}
	}, e.size)
}

// WithObject calls fn with every element and memo, then
// returns memo.
func (e *Enumerator) WithObject(memo any, fn func(v, memo any)) any {
	for v := range e.source {
		fn(v, memo)
	}
	return memo
}

func (e *Enumerator) String() string {
	if n, ok := e.Size(); ok {
		return "#<Enumerator: size " + itoa(n) + ">"
	}
	return "#<Enumerator: ...>"
}
