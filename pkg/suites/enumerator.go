package suites

import (
	"digital.vasic.corespec/pkg/corelib"
	"digital.vasic.corespec/pkg/expect"
	"digital.vasic.corespec/pkg/registry"
)

var ones = []any{"this one", "that one", "which one", "what?"}

// Enumerator documents external and internal iteration.
func Enumerator(d *registry.Declarer) {
	d.Describe("Enumerator", func() {
		d.Context("Public Class Methods", func() {
			d.Describe(".new", nil)
		})

		d.Context("Public Instance Methods", func() {
			enumeratorEach(d)
			enumeratorNext(d)

			stubs(d,
				"#feed", "#next_values", "#peek_values",
				"#with_object",
			)
		})
	})
}

func enumeratorEach(d *registry.Declarer) {
	d.Describe("#each", func() {
		d.It("iterates over the set called upon with the block provided", func() error {
			result := ""
			corelib.Each(ones).Each(func(v any) {
				if v == "this one" {
					result += v.(string)
				}
			})
			return expect.Equal(result, "this one")
		})

		d.It("returns Enumerator object if no block is provided", func() error {
			return expect.TypeOf[*corelib.Enumerator](corelib.Each(ones))
		})
	})

	d.Describe("#each_with_index", func() {
		d.It("iterates over the set called upon with the block provided while tracking the index", func() error {
			var output []any
			var indexes []int
			corelib.EachWithIndex(ones, func(v any, i int) {
				output = append(output, v)
				indexes = append(indexes, i)
			})
			return expect.First(
				expect.Equal(indexes, []int{0, 1, 2, 3}),
				expect.Equal(output, ones),
			)
		})

		d.It("returns an Enumerator object if there is no block", func() error {
			return expect.KindOf(corelib.Each(ones).WithIndex(), "enumerator")
		})
	})

	d.Describe("#each_with_object", func() {
		d.It("also known as the memo pattern, it allows you to easily pass in a new object", func() error {
			hash := corelib.NewHash()
			corelib.EachWithObject(corelib.Words("1 2 3 4"), hash, func(v, memo any) {
				memo.(*corelib.Hash).Set(v, v)
			})
			return expect.First(
				expect.KindOf(hash, "hash"),
				expect.Equal(hash.Get("1"), "1"),
				expect.Equal(hash.Get("2"), "2"),
				expect.Equal(hash.Get("3"), "3"),
				expect.Equal(hash.Get("4"), "4"),
			)
		})

		d.It("returns an Enumerator object if there is no block", func() error {
			return expect.KindOf(corelib.Each(corelib.Words("1 2 3 4")), "enumerator")
		})
	})
}

func enumeratorNext(d *registry.Declarer) {
	d.Describe("#next", func() {
		d.It("returns the elements in order", func() error {
			e := corelib.Each([]any{1, 2})
			defer e.Close()
			first, err := e.Next()
			if err != nil {
				return err
			}
			second, err := e.Next()
			if err != nil {
				return err
			}
			return expect.First(
				expect.Equal(first, 1),
				expect.Equal(second, 2),
			)
		})

		d.It("raises StopIteration at the end", func() error {
			e := corelib.Each([]any{1})
			defer e.Close()
			return expect.Raises(func() error {
				for {
					if _, err := e.Next(); err != nil {
						return err
					}
				}
			}, expect.ErrorKind("StopIteration"), "iteration reached an end")
		})
	})

	d.Describe("#peek", func() {
		d.It("returns the next element without advancing", func() error {
			e := corelib.Each(ones)
			defer e.Close()
			peeked, err := e.Peek()
			if err != nil {
				return err
			}
			next, err := e.Next()
			if err != nil {
				return err
			}
			return expect.First(
				expect.Equal(peeked, "this one"),
				expect.Equal(next, "this one"),
			)
		})
	})

	d.Describe("#rewind", func() {
		d.It("restarts external iteration", func() error {
			e := corelib.Each(ones)
			defer e.Close()
			_, _ = e.Next()
			_, _ = e.Next()
			v, err := e.Rewind().Next()
			if err != nil {
				return err
			}
			return expect.Equal(v, "this one")
		})
	})

	d.Describe("#size", func() {
		d.It("returns the number of elements of a finite source", func() error {
			n, ok := corelib.Each(ones).Size()
			return expect.First(
				expect.True(ok, "size should be known"),
				expect.Equal(n, 4),
			)
		})

		d.It("is unknown for an endless cycle", func() error {
			_, ok := corelib.Cycle(ones, -1).Size()
			return expect.True(!ok, "endless cycle should have no size")
		})
	})

	d.Describe("#with_index", func() {
		d.It("pairs every element with its index", func() error {
			pairs := corelib.Each([]any{"a", "b"}).WithIndex().ToSlice()
			return expect.Equal(pairs, []any{[]any{"a", 0}, []any{"b", 1}})
		})
	})
}
