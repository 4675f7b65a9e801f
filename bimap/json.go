package bimap

import (
	"encoding/json"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var _ json.Marshaler = (*Dict[string])(nil)
var _ json.Unmarshaler = (*Dict[string])(nil)

// MarshalJSON writes the flattened view as a JSON object, in insertion order.
// K must be a string, an integer kind or an encoding.TextMarshaler.
func (d *Dict[K]) MarshalJSON() ([]byte, error) {
	if d == nil || d.m == nil {
		return []byte("{}"), nil
	}
	return d.m.MarshalJSON()
}

// UnmarshalJSON reads a JSON object and applies its entries in order, as if by Update.
// Entries that collide with earlier ones replace them.
func (d *Dict[K]) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[K, K]()
	if err := json.Unmarshal(data, om); err != nil {
		return errors.Wrap(err, "bimap: decode")
	}
	return d.Update(Ordered(om))
}
