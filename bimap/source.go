package bimap

import (
	"reflect"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type pairsSource[K comparable] []Pair[K]

func (s pairsSource[K]) appendPairs(out []Pair[K]) ([]Pair[K], error) {
	return append(out, s...), nil
}

// Pairs is a Source of the given pairs, in order.
func Pairs[K comparable](pairs ...Pair[K]) Source[K] {
	return pairsSource[K](pairs)
}

// Of is a Source of alternating keys and values, e.g., Of("a", "x", "b", "y").
// An odd number of arguments fails with ErrBadSource when applied.
func Of[K comparable](kv ...K) Source[K] {
	if len(kv)%2 != 0 {
		return errSource[K]{errors.Wrapf(ErrBadSource, "bimap: Of got %d values", len(kv))}
	}
	pairs := make(pairsSource[K], 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		pairs = append(pairs, Pair[K]{Key: kv[i], Value: kv[i+1]})
	}
	return pairs
}

type orderedSource[K comparable] struct {
	om *orderedmap.OrderedMap[K, K]
}

func (s orderedSource[K]) appendPairs(out []Pair[K]) ([]Pair[K], error) {
	if s.om == nil {
		return out, nil
	}
	for p := s.om.Oldest(); p != nil; p = p.Next() {
		out = append(out, Pair[K]{Key: p.Key, Value: p.Value})
	}
	return out, nil
}

// Ordered is a Source of the entries of an ordered map, oldest first.
func Ordered[K comparable](om *orderedmap.OrderedMap[K, K]) Source[K] {
	return orderedSource[K]{om}
}

type mapSource[K comparable] map[K]K

func (s mapSource[K]) appendPairs(out []Pair[K]) ([]Pair[K], error) {
	for k, v := range s {
		out = append(out, Pair[K]{Key: k, Value: v})
	}
	return out, nil
}

// Map is a Source of the entries of a plain map.
// Go maps are unordered, so if entries collide with each other the result is not deterministic.
// Use Ordered or Pairs when that matters.
func Map[K comparable](m map[K]K) Source[K] {
	return mapSource[K](m)
}

type fieldsSource[K comparable] struct {
	v any
}

// Fields is a Source of named values: the exported fields of a struct, in declaration order.
// The field name is the key, unless overridden by a `bimap:"name"` tag. A tag of "-" skips the field.
// Both names and field values must be assignable to K (so K is usually string or any).
func Fields[K comparable](v any) Source[K] {
	return fieldsSource[K]{v}
}

func (s fieldsSource[K]) appendPairs(out []Pair[K]) ([]Pair[K], error) {
	rv := reflect.ValueOf(s.v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return out, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrBadSource, "bimap: Fields needs a struct, got %T", s.v)
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("bimap"); ok {
			if tag == "-" {
				continue
			} else if tag != "" {
				name = tag
			}
		}

		key, ok := any(name).(K)
		if !ok {
			return nil, errors.Wrapf(ErrBadSource, "bimap: field name %q is not a %v", name, reflect.TypeFor[K]())
		}
		value, ok := fieldValue[K](rv.Field(i))
		if !ok {
			return nil, errors.Wrapf(ErrBadSource, "bimap: field %s has type %s", f.Name, f.Type)
		}
		out = append(out, Pair[K]{Key: key, Value: value})
	}
	return out, nil
}

// fieldValue converts a struct field to K. A nil interface field is allowed when K can hold nil.
func fieldValue[K comparable](fv reflect.Value) (value K, ok bool) {
	kt := reflect.TypeFor[K]()
	if fv.Kind() == reflect.Interface && !fv.IsNil() && !fv.Type().AssignableTo(kt) {
		fv = fv.Elem()
	}
	if !fv.Type().AssignableTo(kt) {
		return
	}
	reflect.ValueOf(&value).Elem().Set(fv)
	return value, true
}

type errSource[K comparable] struct {
	err error
}

func (s errSource[K]) appendPairs(out []Pair[K]) ([]Pair[K], error) {
	return nil, s.err
}
