package reactive

// Computed is a read-only value kept equal to its getter by an internal
// effect. The getter runs once at construction and again, synchronously,
// whenever anything it read is written.
type Computed[T any] struct {
	ref    *Ref[T]
	effect *EffectRunner
}

func NewComputed[T any](rs *ReactiveSystem, getter func() T, opts ...EffectOption) *Computed[T] {
	var zero T
	c := &Computed[T]{ref: NewRef(rs, zero)}
	c.effect = rs.newEffect(func() error {
		c.ref.SetValue(getter())
		return nil
	}, opts...)
	if name := c.effect.name; name != "" {
		rs.SetLabel(c.ref.target, name)
	} else {
		rs.SetLabel(c.ref.target, "computed")
	}
	c.effect.OnStop(func() { rs.Dispose(c.ref.target) })
	rs.runEffect(c.effect)
	return c
}

func (c *Computed[T]) Value() T { return c.ref.Value() }

func (c *Computed[T]) Peek() T { return c.ref.Peek() }

func (c *Computed[T]) Target() TargetID { return c.ref.target }

func (c *Computed[T]) Effect() *EffectRunner { return c.effect }

// Stop ends recomputation and disposes the computed's target. The last
// computed value stays readable through Value and Peek, untracked.
func (c *Computed[T]) Stop() { c.effect.Stop() }
