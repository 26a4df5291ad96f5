package corelib

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"digital.vasic.corespec/pkg/expect"
)

type pair struct {
	key   any
	value any
}

// Hash is an insertion-ordered map with an optional default
// value or default procedure for missing keys. Keys compare
// with ==, or structurally when their type is not comparable.
type Hash struct {
	pairs       []pair
	defaultVal  any
	defaultProc func(h *Hash, key any) any
}

// NewHash creates an empty Hash with no default.
func NewHash() *Hash { return &Hash{} }

// NewHashDefault creates an empty Hash returning def for
// missing keys.
func NewHashDefault(def any) *Hash { return &Hash{defaultVal: def} }

// NewHashFunc creates an empty Hash calling proc for missing
// keys. proc may store into the hash.
func NewHashFunc(proc func(h *Hash, key any) any) *Hash {
	return &Hash{defaultProc: proc}
}

// HashOf builds a Hash from alternating keys and values. A
// trailing key without a value maps to nil.
func HashOf(kv ...any) *Hash {
	h := NewHash()
	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		h.Set(kv[i], v)
	}
	return h
}

// FromMap builds a Hash from a Go map, ordering keys by their
// printed form.
func FromMap(m any) (*Hash, bool) {
	rv := reflect.ValueOf(m)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) <
			fmt.Sprint(keys[j].Interface())
	})
	h := NewHash()
	for _, k := range keys {
		h.Set(k.Interface(), rv.MapIndex(k).Interface())
	}
	return h, true
}

// TryConvert returns v as a Hash, or nil when v has no hash
// form.
func TryConvert(v any) *Hash {
	switch x := v.(type) {
	case *Hash:
		return x
	case expect.Mapper:
		h, _ := FromMap(x.ToMap())
		return h
	}
	h, ok := FromMap(v)
	if !ok {
		return nil
	}
	return h
}

// Tag reports the value's type tag to expectations.
func (h *Hash) Tag() string { return "hash" }

func keyEqual(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	return expect.Equivalent(a, b)
}

func (h *Hash) index(key any) int {
	for i, p := range h.pairs {
		if keyEqual(p.key, key) {
			return i
		}
	}
	return -1
}

// Get returns the value for key, falling back to the default
// procedure or default value.
func (h *Hash) Get(key any) any {
	if i := h.index(key); i >= 0 {
		return h.pairs[i].value
	}
	if h.defaultProc != nil {
		return h.defaultProc(h, key)
	}
	return h.defaultVal
}

// Lookup returns the stored value for key without defaults.
func (h *Hash) Lookup(key any) (any, bool) {
	if i := h.index(key); i >= 0 {
		return h.pairs[i].value, true
	}
	return nil, false
}

// Set stores value under key and returns value.
func (h *Hash) Set(key, value any) any {
	if i := h.index(key); i >= 0 {
		h.pairs[i].value = value
		return value
	}
	h.pairs = append(h.pairs, pair{key: key, value: value})
	return value
}

// Assoc returns []any{key, value} for key, or nil.
func (h *Hash) Assoc(key any) []any {
	i := h.index(key)
	if i < 0 {
		return nil
	}
	return []any{h.pairs[i].key, h.pairs[i].value}
}

// Clear removes every pair and returns the hash.
func (h *Hash) Clear() *Hash {
	h.pairs = nil
	return h
}

// Default returns the default value.
func (h *Hash) Default() any { return h.defaultVal }

// Any reports whether fn holds for some key/value pair.
func (h *Hash) Any(fn func(k, v any) bool) bool {
	for _, p := range h.pairs {
		if fn(p.key, p.value) {
			return true
		}
	}
	return false
}

// Len returns the number of pairs.
func (h *Hash) Len() int {
	if h == nil {
		return 0
	}
	return len(h.pairs)
}

// Keys returns the keys in insertion order.
func (h *Hash) Keys() []any {
	out := make([]any, len(h.pairs))
	for i, p := range h.pairs {
		out[i] = p.key
	}
	return out
}

// Values returns the values in insertion order.
func (h *Hash) Values() []any {
	out := make([]any, len(h.pairs))
	for i, p := range h.pairs {
		out[i] = p.value
	}
	return out
}

// ToMap implements expect.Mapper.
func (h *Hash) ToMap() map[any]any {
	out := make(map[any]any, len(h.pairs))
	for _, p := range h.pairs {
		out[p.key] = p.value
	}
	return out
}

// Equal reports whether other holds the same pairs, in any
// order. Defaults are not compared.
func (h *Hash) Equal(other any) bool {
	o := TryConvert(other)
	if o == nil || o.Len() != h.Len() {
		return false
	}
	return h.subsetOf(o)
}

func (h *Hash) subsetOf(o *Hash) bool {
	for _, p := range h.pairs {
		v, ok := o.Lookup(p.key)
		if !ok || !expect.Equivalent(p.value, v) {
			return false
		}
	}
	return true
}

func (h *Hash) operand(other any) (*Hash, error) {
	o := TryConvert(other)
	if o == nil {
		return nil, noConversion(other, "Hash")
	}
	return o, nil
}

// Lt reports whether h is a proper subset of other.
func (h *Hash) Lt(other any) (bool, error) {
	o, err := h.operand(other)
	if err != nil {
		return false, err
	}
	return h.Len() < o.Len() && h.subsetOf(o), nil
}

// Le reports whether h is a subset of other.
func (h *Hash) Le(other any) (bool, error) {
	o, err := h.operand(other)
	if err != nil {
		return false, err
	}
	return h.Len() <= o.Len() && h.subsetOf(o), nil
}

// Gt reports whether other is a proper subset of h.
func (h *Hash) Gt(other any) (bool, error) {
	o, err := h.operand(other)
	if err != nil {
		return false, err
	}
	return o.Lt(h)
}

// Ge reports whether other is a subset of h.
func (h *Hash) Ge(other any) (bool, error) {
	o, err := h.operand(other)
	if err != nil {
		return false, err
	}
	return o.Le(h)
}

func (h *Hash) String() string {
	parts := make([]string, len(h.pairs))
	for i, p := range h.pairs {
		parts[i] = fmt.Sprintf("%v => %v", inspect(p.key), inspect(p.value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func inspect(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	}
	return fmt.Sprint(v)
}
