package corelib

import (
	"fmt"

	"digital.vasic.corespec/pkg/expect"
	"digital.vasic.corespec/pkg/registry"
)

// Catalog returns the operations declaration files may call,
// keyed by "<receiver>.<operation>" (plus "compare"). Blocks are
// passed as arguments in the form accepted by ParseBlock.
func Catalog() registry.Operations {
	return registry.Operations{
		"sequence.drop":            seqOp(dropArgs),
		"sequence.drop_while":      blockOrEnum(DropWhile),
		"sequence.take":            seqOp(takeArgs),
		"sequence.take_while":      blockOrEnum(TakeWhile),
		"sequence.count":           seqOp(countArgs),
		"sequence.count_if":        seqOp(countIfArgs),
		"sequence.cycle":           seqOp(cycleArgs),
		"sequence.cycle_values":    seqOp(cycleValues),
		"sequence.detect":          seqOp(detectArgs),
		"sequence.collect":         mapOrEnum(Collect),
		"sequence.collect_concat":  mapOrEnum(CollectConcat),
		"sequence.all":             seqOp(allArgs(All)),
		"sequence.any":             seqOp(allArgs(Any)),
		"sequence.each":            seqOp(eachArgs),
		"sequence.each_with_index": seqOp(eachWithIndexArgs),
		"sequence.index_by":        seqOp(indexBy),
		"sequence.words":           wordsOp,
		"sequence.range":           rangeOp,
		"enumerator.next":          seqOp(enumNext),
		"enumerator.peek":          seqOp(enumPeek),
		"enumerator.rewind":        seqOp(enumRewind),
		"enumerator.size":          seqOp(enumSize),
		"enumerator.with_index":    seqOp(enumWithIndex),
		"hash.new":                 hashNew,
		"hash.get":                 hashOp(hashGet),
		"hash.get_default":         hashGetDefault,
		"hash.get_proc":            hashGetProc,
		"hash.set":                 hashOp(hashSet),
		"hash.try_convert":         hashTryConvert,
		"hash.lt":                  hashCompare((*Hash).Lt),
		"hash.le":                  hashCompare((*Hash).Le),
		"hash.gt":                  hashCompare((*Hash).Gt),
		"hash.ge":                  hashCompare((*Hash).Ge),
		"hash.equal":               hashOp(hashEqual),
		"hash.any":                 hashOp(hashAny),
		"hash.assoc":               hashOp(hashAssoc),
		"hash.clear":               hashOp(hashClear),
		"hash.default":             hashDefault,
		"string.casecmp":           strCompare(Casecmp),
		"string.casecmp?":          strCompare(CasecmpP),
		"string.spaceship":         strCompare(Spaceship),
		"string.capitalize":        strUnary(Capitalize),
		"string.swapcase":          strUnary(Swapcase),
		"string.reverse":           strUnary(Reverse),
		"string.chars":             strOp(charsArgs),
		"string.squeeze":           strOp(squeezeArgs),
		"string.center":            strOp(justifyArgs(Center)),
		"string.ljust":             strOp(justifyArgs(Ljust)),
		"string.rjust":             strOp(justifyArgs(Rjust)),
		"compare":                  compareOp,
	}
}

func arity(args []any, lo, hi int) error {
	if len(args) >= lo && len(args) <= hi {
		return nil
	}
	if lo == hi {
		return argumentCount(len(args), lo)
	}
	return &ArgumentError{Message: fmt.Sprintf(
		"wrong number of arguments (given %d, expected %d..%d)",
		len(args), lo, hi,
	)}
}

func sequenceOf(recv any) ([]any, error) {
	switch x := recv.(type) {
	case []any:
		return x, nil
	case nil:
		return []any{}, nil
	case *Enumerator:
		return x.ToSlice(), nil
	}
	return nil, noConversion(recv, "Array")
}

func seqOp(fn func([]any, ...any) (any, error)) registry.Operation {
	return func(recv any, args ...any) (any, error) {
		seq, err := sequenceOf(recv)
		if err != nil {
			return nil, err
		}
		return fn(seq, args...)
	}
}

func blockOrEnum(fn func([]any, Predicate) []any) registry.Operation {
	return seqOp(func(seq []any, args ...any) (any, error) {
		if err := arity(args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return Each(seq), nil
		}
		block, err := ParseBlock(args[0])
		if err != nil {
			return nil, err
		}
		return fn(seq, block.Predicate()), nil
	})
}

func mapOrEnum(fn func([]any, Mapper) []any) registry.Operation {
	return seqOp(func(seq []any, args ...any) (any, error) {
		if err := arity(args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return Each(seq), nil
		}
		block, err := ParseBlock(args[0])
		if err != nil {
			return nil, err
		}
		return fn(seq, block), nil
	})
}

func dropArgs(seq []any, args ...any) (any, error) {
	return DropArgs(seq, args...)
}

func takeArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	n, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	return Take(seq, n)
}

func countArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return Count(seq), nil
	}
	return CountOf(seq, args[0]), nil
}

func countIfArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	block, err := ParseBlock(args[0])
	if err != nil {
		return nil, err
	}
	return CountIf(seq, block.Predicate()), nil
}

func cycleArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 1, 2); err != nil {
		return nil, err
	}
	n, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return Cycle(seq, n), nil
	}
	if n < 0 {
		return nil, &ArgumentError{Message: "refusing to cycle forever"}
	}
	block, err := ParseBlock(args[1])
	if err != nil {
		return nil, err
	}
	return CycleN(seq, n, func(v any) { block(v) }), nil
}

func cycleValues(seq []any, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	n, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &ArgumentError{Message: "cannot collect an endless cycle"}
	}
	return Cycle(seq, n).ToSlice(), nil
}

func detectArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 1, 2); err != nil {
		return nil, err
	}
	block, err := ParseBlock(args[0])
	if err != nil {
		return nil, err
	}
	var ifNone func() any
	if len(args) == 2 {
		fallback := args[1]
		ifNone = func() any { return fallback }
	}
	return Detect(seq, block.Predicate(), ifNone), nil
}

func allArgs(fn func([]any, Predicate) bool) func([]any, ...any) (any, error) {
	return func(seq []any, args ...any) (any, error) {
		if err := arity(args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return fn(seq, nil), nil
		}
		block, err := ParseBlock(args[0])
		if err != nil {
			return nil, err
		}
		return fn(seq, block.Predicate()), nil
	}
}

func eachArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return Each(seq), nil
}

func eachWithIndexArgs(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return Each(seq).WithIndex(), nil
}

// indexBy maps every element to its index, the way an
// each_with_index block filling a hash would.
func indexBy(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	h := NewHash()
	EachWithIndex(seq, func(v any, i int) { h.Set(v, i) })
	return h, nil
}

func wordsOp(recv any, args ...any) (any, error) {
	s, ok := recv.(string)
	if !ok {
		return nil, noConversion(recv, "String")
	}
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return Words(s), nil
}

func rangeOp(_ any, args ...any) (any, error) {
	if err := arity(args, 2, 2); err != nil {
		return nil, err
	}
	from, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	to, err := intArg(args[1])
	if err != nil {
		return nil, err
	}
	return Range(from, to), nil
}

func optionalCount(args []any) (int, error) {
	if err := arity(args, 0, 1); err != nil {
		return 0, err
	}
	if len(args) == 0 {
		return 1, nil
	}
	return intArg(args[0])
}

// enumNext advances a fresh enumerator n times and returns the
// last element.
func enumNext(seq []any, args ...any) (any, error) {
	n, err := optionalCount(args)
	if err != nil {
		return nil, err
	}
	e := Enumerate(seq)
	defer e.Close()
	var v any
	for range n {
		if v, err = e.Next(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// enumPeek peeks twice and then advances, returning the three
// observed elements.
func enumPeek(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	e := Enumerate(seq)
	defer e.Close()
	out := make([]any, 0, 3)
	for _, step := range []func() (any, error){e.Peek, e.Peek, e.Next} {
		v, err := step()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// enumRewind advances n times, rewinds, and returns the next
// element.
func enumRewind(seq []any, args ...any) (any, error) {
	n, err := optionalCount(args)
	if err != nil {
		return nil, err
	}
	e := Enumerate(seq)
	defer e.Close()
	for range n {
		if _, err := e.Next(); err != nil {
			return nil, err
		}
	}
	return e.Rewind().Next()
}

func enumSize(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	n, ok := Enumerate(seq).Size()
	if !ok {
		return nil, nil
	}
	return n, nil
}

func enumWithIndex(seq []any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return Enumerate(seq).WithIndex().ToSlice(), nil
}

func hashOf(recv any) (*Hash, error) {
	if recv == nil {
		return NewHash(), nil
	}
	h := TryConvert(recv)
	if h == nil {
		return nil, noConversion(recv, "Hash")
	}
	return h, nil
}

func hashOp(fn func(*Hash, ...any) (any, error)) registry.Operation {
	return func(recv any, args ...any) (any, error) {
		h, err := hashOf(recv)
		if err != nil {
			return nil, err
		}
		return fn(h, args...)
	}
}

func hashNew(_ any, args ...any) (any, error) {
	if err := arity(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return NewHash(), nil
	}
	return NewHashDefault(args[0]), nil
}

func hashGet(h *Hash, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return h.Get(args[0]), nil
}

// hashGetDefault reads args[1] from a hash whose default value
// is args[0], seeded with the receiver's pairs.
func hashGetDefault(recv any, args ...any) (any, error) {
	if err := arity(args, 2, 2); err != nil {
		return nil, err
	}
	seed, err := hashOf(recv)
	if err != nil {
		return nil, err
	}
	h := NewHashDefault(args[0])
	for _, k := range seed.Keys() {
		h.Set(k, seed.Get(k))
	}
	return h.Get(args[1]), nil
}

// hashGetProc reads args[0] from a hash whose default procedure
// stores a description of the missing key.
func hashGetProc(_ any, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	h := NewHashFunc(func(h *Hash, key any) any {
		return h.Set(key, fmt.Sprintf("this is what I am: '%v'", key))
	})
	v := h.Get(args[0])
	if _, stored := h.Lookup(args[0]); !stored {
		return nil, fmt.Errorf("default procedure did not store %v", args[0])
	}
	return v, nil
}

func hashSet(h *Hash, args ...any) (any, error) {
	if err := arity(args, 2, 2); err != nil {
		return nil, err
	}
	h.Set(args[0], args[1])
	return h.Get(args[0]), nil
}

func hashTryConvert(recv any, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	if h := TryConvert(recv); h != nil {
		return h, nil
	}
	return nil, nil
}

func hashCompare(fn func(*Hash, any) (bool, error)) registry.Operation {
	return hashOp(func(h *Hash, args ...any) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return fn(h, args[0])
	})
}

func hashEqual(h *Hash, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return h.Equal(args[0]), nil
}

func hashAny(h *Hash, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	block, err := ParseBlock(args[0])
	if err != nil {
		return nil, err
	}
	return h.Any(func(k, v any) bool {
		return Truthy(block([]any{k, v}))
	}), nil
}

func hashAssoc(h *Hash, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	if pair := h.Assoc(args[0]); pair != nil {
		return pair, nil
	}
	return nil, nil
}

func hashClear(h *Hash, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return h.Clear(), nil
}

func hashDefault(_ any, args ...any) (any, error) {
	h, err := hashNew(nil, args...)
	if err != nil {
		return nil, err
	}
	return h.(*Hash).Default(), nil
}

func stringOf(recv any) (string, error) {
	s, ok := recv.(string)
	if !ok {
		return "", noConversion(recv, "String")
	}
	return s, nil
}

func strOp(fn func(string, ...any) (any, error)) registry.Operation {
	return func(recv any, args ...any) (any, error) {
		s, err := stringOf(recv)
		if err != nil {
			return nil, err
		}
		return fn(s, args...)
	}
}

func strUnary(fn func(string) string) registry.Operation {
	return strOp(func(s string, args ...any) (any, error) {
		if err := arity(args, 0, 0); err != nil {
			return nil, err
		}
		return fn(s), nil
	})
}

func strCompare(fn func(string, any) any) registry.Operation {
	return strOp(func(s string, args ...any) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return fn(s, args[0]), nil
	})
}

func charsArgs(s string, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return Chars(s), nil
}

func squeezeArgs(s string, args ...any) (any, error) {
	if err := arity(args, 0, 1); err != nil {
		return nil, err
	}
	set := ""
	if len(args) == 1 {
		var err error
		if set, err = stringOf(args[0]); err != nil {
			return nil, err
		}
	}
	return Squeeze(s, set), nil
}

func justifyArgs(
	fn func(string, int, string) (string, error),
) func(string, ...any) (any, error) {
	return func(s string, args ...any) (any, error) {
		if err := arity(args, 1, 2); err != nil {
			return nil, err
		}
		width, err := intArg(args[0])
		if err != nil {
			return nil, err
		}
		pad := " "
		if len(args) == 2 {
			if pad, err = stringOf(args[1]); err != nil {
				return nil, err
			}
		}
		return fn(s, width, pad)
	}
}

func compareOp(recv any, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return expect.Compare(recv, args[0]), nil
}
