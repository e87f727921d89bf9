package reactive

import (
	"fmt"
	"reflect"
)

// Observable wraps a caller-owned map so that every Get is tracked per key and
// every Set that changes a value triggers that key.
type Observable[K comparable, V any] struct {
	rs     *ReactiveSystem
	target TargetID
	m      map[K]V
}

// Observe wraps m. Observing the same map again returns a handle on the same
// target. A nil map is replaced by an empty one owned by the observable.
func Observe[K comparable, V any](rs *ReactiveSystem, m map[K]V) *Observable[K, V] {
	if m == nil {
		m = map[K]V{}
	}
	id := rs.register(identityOf(reflect.ValueOf(m)), fmt.Sprintf("%T", m))
	return &Observable[K, V]{rs: rs, target: id, m: m}
}

func (o *Observable[K, V]) Target() TargetID { return o.target }

func (o *Observable[K, V]) Named(name string) *Observable[K, V] {
	o.rs.SetLabel(o.target, name)
	return o
}

func (o *Observable[K, V]) Get(k K) V {
	v := o.m[k]
	o.rs.Track(o.target, k)
	return v
}

func (o *Observable[K, V]) Lookup(k K) (V, bool) {
	v, ok := o.m[k]
	o.rs.Track(o.target, k)
	return v, ok
}

// Set assigns v to k and triggers k if the key was absent or its value
// changed.
func (o *Observable[K, V]) Set(k K, v V) {
	old, had := o.m[k]
	o.m[k] = v
	if !had || changed(old, v) {
		o.rs.Trigger(o.target, k)
	}
}

// Delete removes k and triggers it if it was present.
func (o *Observable[K, V]) Delete(k K) {
	if _, had := o.m[k]; !had {
		return
	}
	delete(o.m, k)
	o.rs.Trigger(o.target, k)
}

// Len is untracked.
func (o *Observable[K, V]) Len() int { return len(o.m) }

// Keys returns the current keys in no particular order. It is untracked.
func (o *Observable[K, V]) Keys() []K {
	keys := make([]K, 0, len(o.m))
	for k := range o.m {
		keys = append(keys, k)
	}
	return keys
}
