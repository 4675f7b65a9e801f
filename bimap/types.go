// Package bimap implements a bidirectional map, where each value is also a key that maps back.
package bimap

import (
	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmpty       = errors.New("no pair to pop")
	ErrMalformed   = errors.New("newest entries are not a pair")
	ErrUnsupported = errors.New("unsupported operation")
	ErrUnhashable  = errors.New("value can't be used as a key")
	ErrBadSource   = errors.New("bad source")
)

// Pair is a single key/value entry of a Dict.
type Pair[K comparable] struct {
	Key, Value K
}

// Mapping is anything that can be compared against a Dict with Equal.
type Mapping[K comparable] interface {
	// Len returns the number of entries in the flattened view.
	Len() int

	// Lookup returns the value for the given key and whether it was found.
	Lookup(key K) (K, bool)
}

// Source is a batch of pairs passed to New or Update.
// It is built with Pairs, Of, Ordered, Map or Fields. A *Dict is also a Source.
type Source[K comparable] interface {
	appendPairs(out []Pair[K]) ([]Pair[K], error)
}
