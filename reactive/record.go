package reactive

import (
	"fmt"
	"reflect"
)

// Record gives tracked access to the exported fields of a caller-owned
// struct, by field name.
type Record[T any] struct {
	rs     *ReactiveSystem
	target TargetID
	p      *T
	v      reflect.Value
}

func ObserveStruct[T any](rs *ReactiveSystem, p *T) (*Record[T], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil %T", ErrNotStruct, p)
	}
	v := reflect.ValueOf(p).Elem()
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotStruct, p)
	}
	id := rs.register(identityOf(reflect.ValueOf(p)), v.Type().String())
	return &Record[T]{rs: rs, target: id, p: p, v: v}, nil
}

func (r *Record[T]) Target() TargetID { return r.target }

func (r *Record[T]) Named(name string) *Record[T] {
	r.rs.SetLabel(r.target, name)
	return r
}

// Raw returns the wrapped struct. Access through it is untracked.
func (r *Record[T]) Raw() *T { return r.p }

func (r *Record[T]) field(name string) (reflect.Value, error) {
	sf, ok := r.v.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, r.v.Type(), name)
	}
	f, err := r.v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s: %w", ErrUnknownField, r.v.Type(), name, err)
	}
	return f, nil
}

func (r *Record[T]) Get(name string) (any, error) {
	f, err := r.field(name)
	if err != nil {
		return nil, err
	}
	v := f.Interface()
	r.rs.Track(r.target, name)
	return v, nil
}

// Set assigns v to the named field. Nothing is triggered when the assignment
// fails or the value is unchanged.
func (r *Record[T]) Set(name string, v any) error {
	f, err := r.field(name)
	if err != nil {
		return err
	}
	if !f.CanSet() {
		return fmt.Errorf("%w: %s.%s is read-only", ErrNotAssignable, r.v.Type(), name)
	}

	nv := reflect.ValueOf(v)
	if !nv.IsValid() {
		switch f.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			nv = reflect.Zero(f.Type())
		default:
			return fmt.Errorf("%w: nil to %s.%s (%s)", ErrNotAssignable, r.v.Type(), name, f.Type())
		}
	}
	if !nv.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("%w: %s to %s.%s (%s)", ErrNotAssignable, nv.Type(), r.v.Type(), name, f.Type())
	}

	old := f.Interface()
	f.Set(nv)
	if changed(old, f.Interface()) {
		r.rs.Trigger(r.target, name)
	}
	return nil
}
