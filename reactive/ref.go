package reactive

import "fmt"

// Ref is a single tracked value. Reads and writes go through ValueKey on the
// ref's own target.
type Ref[T any] struct {
	rs     *ReactiveSystem
	target TargetID
	value  T
}

func NewRef[T any](rs *ReactiveSystem, initialValue T) *Ref[T] {
	var zero T
	return &Ref[T]{
		rs:     rs,
		target: rs.NewTarget(fmt.Sprintf("ref[%T]", zero)),
		value:  initialValue,
	}
}

func (r *Ref[T]) Target() TargetID { return r.target }

func (r *Ref[T]) Named(name string) *Ref[T] {
	r.rs.SetLabel(r.target, name)
	return r
}

func (r *Ref[T]) Value() T {
	r.rs.Track(r.target, ValueKey)
	return r.value
}

// Peek reads the value without tracking it.
func (r *Ref[T]) Peek() T {
	return r.value
}

// SetValue stores v and triggers every reader, whether or not v changed.
func (r *Ref[T]) SetValue(v T) {
	r.value = v
	r.rs.Trigger(r.target, ValueKey)
}
