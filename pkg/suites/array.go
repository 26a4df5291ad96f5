package suites

import (
	"digital.vasic.corespec/pkg/corelib"
	"digital.vasic.corespec/pkg/expect"
	"digital.vasic.corespec/pkg/registry"
)

// stubs declares empty pending groups, one per name.
func stubs(d *registry.Declarer, names ...string) {
	for _, name := range names {
		d.XDescribe(name, nil)
	}
}

// Array documents sequence containers.
func Array(d *registry.Declarer) {
	d.Describe("Array", func() {
		d.Context("Public Class Methods", func() {
			stubs(d, "[]", ".new", ".try_convert")
		})

		d.Context("Public Instance Methods", func() {
			stubs(d,
				"&", "*", "+", "-", "<<", "<=>", "==",
				"ary[index]", "#any?", "#assoc", "#at",
				"#bsearch", "#bsearch_index", "#clear",
				"#collect", "#combination", "#compact",
				"#concat", "#count", "#cycle", "#delete",
				"#delete_at", "#delete_if", "#dig", "#drop",
				"#drop_while", "#each", "#each_index",
				"#empty?", "#eql?", "#fetch", "#fill",
				"#find_index", "#first", "#flatten",
				"#frozen?", "#hash", "#include?", "#index",
				"#initialize_copy", "#insert", "#to_s",
				"#inspect", "#join", "#keep_if", "#last",
				"#length", "#map", "#pack", "#permutation",
				"#pop", "#product", "#push", "#rassoc",
				"#rassoc", "#reject",
				"#repeated_combination(n)",
				"#repeated_permutation", "#replace",
				"#reverse", "#reverse_each", "#rindex",
				"#rotate", "#sample", "#select", "#shift",
				"#shuffle", "#size", "#slice", "#sort",
				"#sort_by", "#take", "#take_while", "#to_a",
				"#to_ary", "#to_h", "#to_s", "#transpose",
				"#uniq", "#unshift", "#values_at", "#zip",
				"['ary1'] | ['ary2'] (Set Union)",
			)
		})

		d.Context("other", func() {
			d.Describe("%W(foo bar baz) syntactic sugar", func() {
				d.It("creates an array from values of strings", func() error {
					words := corelib.Words("foo bar baz")
					return expect.Equal(words, []any{"foo", "bar", "baz"})
				})
			})
		})
	})
}
