package bimap

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Dict is a bidirectional map over a single key type.
// Every pair (a, b) is stored as both a -> b and b -> a, so a lookup from either side yields the other.
// Setting a key or value that is already part of a pair replaces that pair.
// Entries are kept in insertion order.
// The zero Dict is empty and ready to use, and a nil *Dict can be read as an empty one.
// It is not goroutine-safe.
type Dict[K comparable] struct {
	m *orderedmap.OrderedMap[K, K]
}

// New builds a new Dict and applies the given sources to it, in order.
func New[K comparable](sources ...Source[K]) (*Dict[K], error) {
	d := &Dict[K]{}
	if err := d.Update(sources...); err != nil {
		return nil, err
	}
	return d, nil
}

// FromKeys never works: pairing every key with one shared value would collapse the Dict to a single pair.
func FromKeys[K comparable](keys []K, value ...K) (*Dict[K], error) {
	return nil, errors.Wrap(ErrUnsupported, "bimap: FromKeys")
}

func (d *Dict[K]) init() {
	if d.m == nil {
		d.m = orderedmap.New[K, K]()
	}
}

// Len returns the number of entries, which is twice the number of pairs (self-loops count once).
func (d *Dict[K]) Len() int {
	if d == nil || d.m == nil {
		return 0
	}
	return d.m.Len()
}

func (d *Dict[K]) Has(key K) (has bool) {
	_, has = d.Lookup(key)
	return
}

func (d *Dict[K]) Lookup(key K) (value K, has bool) {
	if d == nil || d.m == nil || checkKey(key) != nil {
		return
	}
	return d.m.Get(key)
}

// Get returns the other side of the pair containing key, or ErrKeyNotFound.
func (d *Dict[K]) Get(key K) (K, error) {
	if err := checkKey(key); err != nil {
		var zero K
		return zero, err
	}
	value, has := d.Lookup(key)
	if !has {
		return value, notFound(key)
	}
	return value, nil
}

// Set pairs key with value.
// Any pair that key is already part of is removed first, then any pair that value is part of.
func (d *Dict[K]) Set(key, value K) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := checkKey(value); err != nil {
		return err
	}

	d.init()
	d.set(key, value)
	return nil
}

func (d *Dict[K]) set(key, value K) {
	// value's membership must be checked after key's pair is gone: they may have been partners
	if _, has := d.m.Get(key); has {
		d.remove(key)
	}
	if _, has := d.m.Get(value); has {
		d.remove(value)
	}

	d.m.Set(key, value)
	d.m.Set(value, key)
}

// remove deletes key and its partner. The second delete is a no-op for self-loops.
func (d *Dict[K]) remove(key K) (value K, has bool) {
	value, has = d.m.Delete(key)
	if has {
		d.m.Delete(value)
	}
	return
}

// Delete removes the pair containing key, or returns ErrKeyNotFound without changing anything.
func (d *Dict[K]) Delete(key K) error {
	_, err := d.Pop(key)
	return err
}

// Pop removes the pair containing key and returns key's partner.
// If key is not present, the default is returned if one was passed (even the zero K), otherwise ErrKeyNotFound.
// Only the first default is used.
func (d *Dict[K]) Pop(key K, def ...K) (K, error) {
	fallback := optionalOf(def)

	if err := checkKey(key); err != nil {
		var zero K
		return zero, err
	}
	if d.m != nil {
		if value, has := d.remove(key); has {
			return value, nil
		}
	}

	if value, ok := fallback.get(); ok {
		return value, nil
	}
	var zero K
	return zero, notFound(key)
}

// PopItem removes the most recently inserted pair.
// It returns both of its entries, in the order they were inserted.
func (d *Dict[K]) PopItem() (out [2]Pair[K], err error) {
	if d.Len() == 0 {
		return out, ErrEmpty
	}

	newest := d.m.Newest()
	if newest.Key == newest.Value {
		d.m.Delete(newest.Key)
		out[0] = Pair[K]{Key: newest.Key, Value: newest.Value}
		out[1] = out[0]
		return out, nil
	}

	prev := newest.Prev()
	if prev == nil || prev.Key != newest.Value || prev.Value != newest.Key {
		return out, errors.Wrapf(ErrMalformed, "bimap: newest entry %#v", any(newest.Key))
	}

	out[0] = Pair[K]{Key: prev.Key, Value: prev.Value}
	out[1] = Pair[K]{Key: newest.Key, Value: newest.Value}
	d.m.Delete(newest.Key)
	d.m.Delete(prev.Key)
	return out, nil
}

// SetDefault returns the partner of key if present.
// Otherwise it pairs key with def and returns def.
func (d *Dict[K]) SetDefault(key, def K) (K, error) {
	if value, has := d.Lookup(key); has {
		return value, nil
	}
	if err := d.Set(key, def); err != nil {
		var zero K
		return zero, err
	}
	return def, nil
}

// Update applies the pairs from all sources in order, as if by Set.
// Later pairs can replace earlier ones, even those from the same call.
// If any source or pair is invalid, nothing is applied.
func (d *Dict[K]) Update(sources ...Source[K]) error {
	var all []Pair[K]
	for _, s := range sources {
		var err error
		all, err = s.appendPairs(all)
		if err != nil {
			return err
		}
	}

	for _, p := range all {
		if err := checkKey(p.Key); err != nil {
			return err
		}
		if err := checkKey(p.Value); err != nil {
			return err
		}
	}

	if len(all) == 0 {
		return nil
	}
	d.init()
	for _, p := range all {
		d.set(p.Key, p.Value)
	}
	return nil
}

// Clear removes every pair.
func (d *Dict[K]) Clear() {
	d.m = nil
}

// Clone returns a copy of this Dict with the same insertion order.
func (d *Dict[K]) Clone() *Dict[K] {
	out := &Dict[K]{}
	if d.Len() == 0 {
		return out
	}
	out.m = orderedmap.New[K, K](d.m.Len())
	for k, v := range d.All() {
		out.m.Set(k, v)
	}
	return out
}

// All iterates over the flattened view, both directions of every pair, in insertion order.
func (d *Dict[K]) All() iter.Seq2[K, K] {
	return func(yield func(K, K) bool) {
		if d == nil || d.m == nil {
			return
		}
		for p := d.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Keys iterates over every key of the flattened view in insertion order.
func (d *Dict[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range d.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Pairs iterates over every pair once, from the side that was set as the key.
func (d *Dict[K]) Pairs() iter.Seq2[K, K] {
	return func(yield func(K, K) bool) {
		if d == nil || d.m == nil {
			return
		}
		for p := d.m.Oldest(); p != nil; p = p.Next() {
			if p.Key != p.Value {
				p = p.Next() // skip mirror
				if p == nil {
					return
				}
			}
			if !yield(p.Value, p.Key) {
				return
			}
		}
	}
}

// Flatten returns the flattened view as a plain map.
func (d *Dict[K]) Flatten() map[K]K {
	return maps.Collect(d.All())
}

// Equal compares the flattened view with other, ignoring order.
func (d *Dict[K]) Equal(other Mapping[K]) bool {
	if other == nil {
		return d.Len() == 0
	}
	if d.Len() != other.Len() {
		return false
	}
	for k, v := range d.All() {
		if ov, has := other.Lookup(k); !has || ov != v {
			return false
		}
	}
	return true
}

// EqualMap compares the flattened view with a plain map.
func (d *Dict[K]) EqualMap(m map[K]K) bool {
	return maps.Equal(d.Flatten(), m)
}

func (d *Dict[K]) String() string {
	var b strings.Builder
	b.WriteString("Dict{")
	first := true
	for k, v := range d.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%#v: %#v", any(k), any(v))
	}
	b.WriteString("}")
	return b.String()
}

func (d *Dict[K]) appendPairs(out []Pair[K]) ([]Pair[K], error) {
	for k, v := range d.All() {
		out = append(out, Pair[K]{Key: k, Value: v})
	}
	return out, nil
}

// checkKey rejects values that would panic as map keys, or that can never be found again (NaN).
func checkKey[K comparable](key K) error {
	rv := reflect.ValueOf(any(key))
	if rv.IsValid() && !rv.Comparable() {
		return errors.Wrapf(ErrUnhashable, "bimap: %T", any(key))
	}
	if key != key {
		return errors.Wrapf(ErrUnhashable, "bimap: %v is not equal to itself", any(key))
	}
	return nil
}

func notFound[K comparable](key K) error {
	return errors.Wrapf(ErrKeyNotFound, "bimap: %#v", any(key))
}

// optional is a value that may be absent, distinct from the zero K.
type optional[K any] struct {
	value K
	ok    bool
}

func optionalOf[K any](values []K) (o optional[K]) {
	if len(values) != 0 {
		o.value = values[0]
		o.ok = true
	}
	return
}

func (o optional[K]) get() (K, bool) {
	return o.value, o.ok
}
