package marketplace

import (
	"github.com/anantjoshi01/gcam-core/hashmap"
)

// Info - A bag of named numeric values attached to one market period. It is
// used to pass side information such as calibrated supply, resource variance
// and capacity factors between model components that share a market.
type Info struct {
	values *hashmap.Map[string, float64]
}

// NewInfo - Returns a new empty Info.
func NewInfo() *Info {
	return &Info{values: hashmap.NewStringMap[float64]()}
}

// SetDouble - Stores a value under the given name, overwriting any previous
// value.
func (I *Info) SetDouble(name string, value float64) {
	I.values.Insert(name, value)
}

// GetDouble - Returns the value stored under the given name.
//
// It returns:
//   - value is the stored value, or zero if the name is unknown
//   - found is whether the name was present
func (I *Info) GetDouble(name string) (value float64, found bool) {
	it := I.values.FindConst(name)
	if it == I.values.ConstEnd() {
		return
	}

	value = it.Value()
	found = true
	return
}
