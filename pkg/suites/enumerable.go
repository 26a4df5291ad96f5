package suites

import (
	"fmt"

	"digital.vasic.corespec/pkg/corelib"
	"digital.vasic.corespec/pkg/expect"
	"digital.vasic.corespec/pkg/registry"
)

var operations = corelib.Catalog()

// call invokes a catalog operation. It is used for the block-less
// forms, which only exist in the dynamic API.
func call(name string, recv any, args ...any) (any, error) {
	op, ok := operations[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %s", name)
	}
	return op(recv, args...)
}

// enumeratorWithoutBlock checks that the block-less form of name
// returns an enumerator.
func enumeratorWithoutBlock(name string, recv any, args ...any) func() error {
	return func() error {
		got, err := call(name, recv, args...)
		if err != nil {
			return err
		}
		return expect.KindOf(got, "enumerator")
	}
}

func lengthBelow(n int) corelib.Predicate {
	return func(v any) bool { return len(v.(string)) < n }
}

func equalTo(want any) corelib.Predicate {
	return func(v any) bool { return expect.Equivalent(v, want) }
}

// Enumerable documents traversal, searching and folding over
// sequences.
func Enumerable(d *registry.Declarer) {
	d.Describe("Enumerable", func() {
		d.Context("Public Instance Methods", func() {
			enumerableQuantifiers(d)
			stubs(d, "#chunk", "#chunk_while")
			enumerableMapping(d)
			enumerableCounting(d)
			enumerableDropping(d)
			stubs(d, "#each_cons", "#each_entry", "#each_slice")
			enumerableEach(d)
			stubs(d,
				"#entries", "#find", "#find_all", "#find_index",
				"#first", "#flat_map", "#grep", "#grep_v",
				"#group_by", "#include?", "#inject", "#lazy",
				"#map", "#max", "#max_by", "#member?", "#min",
				"#min_by", "#minmax", "#minmax_by", "#none?",
				"#one?", "#partition", "#reduce", "#reject",
				"#reverse_each", "#select", "#slice_after",
				"#slice_before", "#slice_when", "#sort",
				"#sort_by", "#take", "#take_while", "#to_a",
				"#to_h", "#zip",
			)
		})
	})
}

func enumerableQuantifiers(d *registry.Declarer) {
	d.Describe("#all?", func() {
		d.It("yields to the block each value of the specified input and returns true if all pass", func() error {
			words := corelib.Words("a be see deed")
			return expect.Equal(corelib.All(words, lengthBelow(5)), true)
		})

		d.It("returns false if there a single value that does not meet the required criteria", func() error {
			words := corelib.Words("a be see deed fiver")
			return expect.Equal(corelib.All(words, lengthBelow(5)), false)
		})

		d.It("returns true if no block given and all content is truthy", func() error {
			words := corelib.Words("a be see deed fiver")
			return expect.Equal(corelib.All(words, nil), true)
		})

		d.It("returns true for values other than strings", func() error {
			inputs := []any{[]any{}, corelib.NewHash(), 1, 1.0, true}
			return expect.Equal(corelib.All(inputs, nil), true)
		})

		d.It("returns false if no block given and content is false or nil", func() error {
			return expect.Equal(corelib.All([]any{false, nil, true}, nil), false)
		})
	})

	d.Describe("#any?", func() {
		d.It("inverse of #all?, returns true for any inputs that meet the critera of the block", func() error {
			inputs := []any{[]any{}, corelib.NewHash(), 1, 1.0, false}
			return expect.Equal(corelib.Any(inputs, equalTo(false)), true)
		})

		d.It("returns false if no values make the block return true", func() error {
			inputs := []any{false, nil, true}
			return expect.Equal(corelib.Any(inputs, equalTo(true)), true)
		})
	})
}

func enumerableMapping(d *registry.Declarer) {
	feelings := corelib.Words("grumpy hungry purring sleeping athletic")
	months := corelib.Words("January February March")

	d.Describe("#collect", func() {
		d.It("yields to the block the value of the inputs and returns an array", func() error {
			cats := corelib.Collect(feelings, func(v any) any {
				return v.(string) + " cat"
			})
			return expect.Equal(cats, []any{
				"grumpy cat", "hungry cat", "purring cat",
				"sleeping cat", "athletic cat",
			})
		})

		d.It("can replace all values", func() error {
			replaced := corelib.Collect(feelings, func(any) any { return "asdf" })
			return expect.Equal(replaced, corelib.Cycle([]any{"asdf"}, 5).ToSlice())
		})

		d.It("returns an Enumerator if no block is supplied",
			enumeratorWithoutBlock("sequence.collect", months))
	})

	d.Describe("#collect_concat", func() {
		d.It("returns an array with the concatinated results of running the block once for every element in enum", func() error {
			got := corelib.CollectConcat([]any{"January", "February"}, func(v any) any {
				return v.(string) + " is cold"
			})
			return expect.Equal(got, []any{"January is cold", "February is cold"})
		})

		d.It("can do other cool stuff", func() error {
			got, err := call("sequence.collect_concat", corelib.Range(1, 5), "pair_double")
			if err != nil {
				return err
			}
			return expect.Equal(got, []any{1, 2, 2, 4, 3, 6, 4, 8, 5, 10})
		})

		d.It("returns an Enumerator if no block is supplied",
			enumeratorWithoutBlock("sequence.collect_concat", months))
	})
}

func enumerableCounting(d *registry.Declarer) {
	d.Describe("#count", func() {
		five := corelib.Range(1, 5)
		fives := []any{5, 5, 5, 5, 5}

		d.It("returns the number of items in emum", func() error {
			return expect.Equal(corelib.Count(five), 5)
		})

		d.It("returns the number of items in enum that match the argument in the block", func() error {
			even := func(v any) bool { return v.(int)%2 == 0 }
			return expect.Equal(corelib.CountIf(five, even), 2)
		})

		d.It("returns the number of items in enum matching item provided", func() error {
			return expect.Equal(corelib.CountOf(fives, 5), 5)
		})

		d.It("returns zero if there is no item match", func() error {
			return expect.Equal(corelib.CountOf(fives, 6), 0)
		})
	})

	d.Describe("#cycle(n)", func() {
		d.It("can cycle forever with (1..2).cycle { |val| puts val } unless interrupted", func() error {
			got := corelib.Cycle(corelib.Range(1, 2), -1).Take(5)
			return expect.Equal(got, []any{1, 2, 1, 2, 1})
		})

		d.It("will cycle a limtited number of times according to the value of 'n' provided", func() error {
			var cycled []any
			corelib.CycleN([]any{1}, 5, func(v any) { cycled = append(cycled, v) })
			return expect.Equal(cycled, []any{1, 1, 1, 1, 1})
		})

		d.It("returns nil if the loop completes without interruption", func() error {
			return expect.Equal(corelib.CycleN([]any{1}, 5, func(any) {}), nil)
		})

		d.It("returns an Enumerator object if no block is provided",
			enumeratorWithoutBlock("sequence.cycle", corelib.Range(1, 2), 3))
	})

	d.Describe("#detect(ifnone)", func() {
		scope := corelib.Range(1, 10)

		d.It("returns the first value for which the block is not false", func() error {
			return expect.Equal(corelib.Detect(scope, equalTo(5), nil), 5)
		})

		d.It("returns nil if there is no match from the block", func() error {
			return expect.Equal(corelib.Detect(scope, equalTo(9001), nil), nil)
		})

		d.It("returns ifnone if there is no match from the block and ifnone is defined (ifnone must be a lambda or proc)", func() error {
			ifNone := func() any { return "nope!" }
			return expect.Equal(corelib.Detect(scope, equalTo(9001), ifNone), "nope!")
		})
	})
}

func enumerableDropping(d *registry.Declarer) {
	d.Describe("#drop(n)", func() {
		d.It("returns an array excluding the elements from index 0 - (n-1)", func() error {
			dropped, err := corelib.Drop([]any{1, 1, 1, 1, 1}, 3)
			if err != nil {
				return err
			}
			return expect.First(
				expect.KindOf(dropped, "array"),
				expect.Equal(dropped, []any{1, 1}),
			)
		})

		d.It("can accept inputs in other ways", func() error {
			dropped, err := corelib.Drop(corelib.Range(1, 5), 3)
			if err != nil {
				return err
			}
			chars, err := corelib.Drop(corelib.Chars("string"), 3)
			if err != nil {
				return err
			}
			joined := ""
			for _, c := range chars {
				joined += c.(string)
			}
			return expect.First(
				expect.Equal(dropped, []any{4, 5}),
				expect.Equal(joined, "ing"),
			)
		})

		d.It("raises an error if 'n' is negative", func() error {
			return expect.Raises(func() error {
				_, err := corelib.Drop([]any{1, 1, 1, 1, 1}, -3)
				return err
			}, expect.ErrorKind("ArgumentError"), "attempt to drop negative size")
		})

		d.It("raises an error if no value for 'n' is provided", func() error {
			drop := func() error {
				_, err := corelib.DropArgs([]any{5, 5, 5, 5, 5})
				return err
			}
			return expect.First(
				expect.Raises(drop, expect.ErrorKind("ArgumentError"),
					`.*(wrong number of arguments)+.*(expected 1)+.*`),
				expect.Raises(drop, expect.ErrorKind("ArgumentError"),
					"^"+expect.Literal("wrong number of arguments (given 0, expected 1)")+"$"),
			)
		})
	})

	d.Describe("#drop_while", func() {
		onlyOneSix := []any{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}

		d.It("returns an array, dropping elements until the block condition is satisfied", func() error {
			dropped := corelib.DropWhile(onlyOneSix, func(v any) bool {
				return !expect.Equivalent(v, 6)
			})
			return expect.First(
				expect.KindOf(dropped, "array"),
				expect.Equal(dropped, []any{6, 7, 8, 9, 0}),
			)
		})

		d.It("returns an Enumerator object if no block is supplied",
			enumeratorWithoutBlock("sequence.drop_while", onlyOneSix))
	})
}

func enumerableEach(d *registry.Declarer) {
	d.Describe("#each_with_index", func() {
		indexes := corelib.Range(0, 4)

		d.It("tracks the index with each enumeration", func() error {
			pointless := corelib.NewHash()
			corelib.EachWithIndex(indexes, func(v any, i int) { pointless.Set(v, i) })
			return expect.First(
				expect.Equal(pointless.Get(0), 0),
				expect.Equal(pointless.Get(4), 4),
				expect.Equal(pointless.Get(5), nil),
			)
		})

		d.It("returns an Enumerator object when no block is supplied",
			enumeratorWithoutBlock("sequence.each_with_index", indexes))
	})

	d.Describe("#each_with_object", func() {
		var alphabet []any
		for c := 'a'; c <= 'z'; c++ {
			alphabet = append(alphabet, string(c))
		}

		d.It("constructs an object from the enumerated data", func() error {
			counter := 1
			got := corelib.EachWithObject(alphabet, corelib.NewHash(), func(v, memo any) {
				memo.(*corelib.Hash).Set(v, counter)
				counter++
			})
			h := got.(*corelib.Hash)
			return expect.First(
				expect.KindOf(h, "hash"),
				expect.Equal(h.Get("a"), 1),
				expect.Equal(h.Get("z"), 26),
			)
		})

		d.It("returns an Enumerator if no block is provided",
			enumeratorWithoutBlock("sequence.each", alphabet))
	})
}
