package reactive

import "reflect"

// changed reports whether a write of next over prev counts as a change.
// Values are compared with ==; values that cannot be compared always count
// as changed.
func changed[T any](prev, next T) bool {
	a, b := any(prev), any(next)
	if a == nil || b == nil {
		return a != b
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() || !av.Comparable() || !bv.Comparable() {
		return true
	}
	return a != b
}
