package suites

import "digital.vasic.corespec/pkg/registry"

// String lists the text string behaviours still to be
// documented. The worked examples live in files/string.yaml.
func String(d *registry.Declarer) {
	d.Describe("String", func() {
		stubs(d,
			"new", "try_convert", "string % /argument",
			"string * integer", "string + other_string",
			"mutable strings", "frozen strings",
			"string << integer", "string << object",
			"string == object", "string === object",
			"string =~ object", "string[things]",
			"string ascii_only", "string.b", "string.bytes",
			"bytesize", "byteslice", "capitalize", "casecmp",
			"center", "chars", "chomp", "chomp!", "chop", "chr",
			"clear", "codepoints", "concat", "count", "crypt",
			"delete", "downcase", "dump", "each_byte",
			"each_char", "each_codepoint", "each_line",
			"empty?", "encode", "encoding", "end_with?", "eql?",
			"force_encoding", "freeze", "getbyte", "gsub",
			"hash", "hex", "include?", "index", "replace",
			"insert", "inspect", "intern", "length", "length",
			"lines", "ljust", "lstrp", "match", "next", "oct",
			"ord", "partition", "prepend", "replace", "reverse",
			"rindex", "rindex", "rjust", "rpartition", "rstrip",
			"scan", "scrub", "setbyte", "slice", "split",
			"squeeze", "start_with?", "strip", "sub", "succ",
			"sum", "swapcase", "to_c", "to_f", "to_i", "to_r",
			"to_s", "to_sym", "tr", "tr_s", "unpack", "upcase",
			"upto", "valid_encoding?",
		)
	})
}
