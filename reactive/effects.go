package reactive

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// EffectRunner is a tracked computation. While it runs, every tracked read
// subscribes it to the (target, key) pair that was read.
type EffectRunner struct {
	rs   *ReactiveSystem
	id   EffectID
	name string
	fn   ErrFn

	running bool
	stopped bool
	scope   bool
	runs    uint64

	// deps holds the pairs this effect is subscribed to, in the order they
	// were first read. seen collects the pairs read during the current run.
	deps   []*dep
	depSet mapset.Set[*dep]
	seen   mapset.Set[*dep]

	parent   *EffectRunner
	children []*EffectRunner
	onStop   []func()
}

type EffectOption func(*EffectRunner)

// WithName labels an effect in errors, snapshots and graph output.
func WithName(name string) EffectOption {
	return func(e *EffectRunner) {
		e.name = name
	}
}

func (e *EffectRunner) ID() EffectID { return e.id }
func (e *EffectRunner) Name() string { return e.name }
func (e *EffectRunner) Runs() uint64 { return e.runs }
func (e *EffectRunner) Stopped() bool { return e.stopped }
func (e *EffectRunner) Running() bool { return e.running }
func (e *EffectRunner) DepCount() int { return len(e.deps) }
func (e *EffectRunner) String() string {
	if e.name != "" {
		return fmt.Sprintf("effect %q", e.name)
	}
	if e.scope {
		return fmt.Sprintf("scope#%d", e.id)
	}
	return fmt.Sprintf("effect#%d", e.id)
}

// Effect runs fn immediately and again every time something it read is
// written. The returned function stops it; calling it more than once is fine.
func Effect(rs *ReactiveSystem, fn ErrFn, opts ...EffectOption) ErrFn {
	e := rs.newEffect(fn, opts...)
	rs.runEffect(e)
	return func() error {
		e.Stop()
		return nil
	}
}

// EffectScope runs scopedFn untracked and collects every effect created
// inside it, so they can all be stopped together.
func EffectScope(rs *ReactiveSystem, scopedFn ErrFn, opts ...EffectOption) (stopScope ErrFn) {
	e := rs.newEffect(nil, opts...)
	e.scope = true

	prevScope, prevSub := rs.activeScope, rs.activeSub
	rs.activeScope, rs.activeSub = e, nil
	func() {
		defer func() {
			rs.activeScope, rs.activeSub = prevScope, prevSub
		}()
		if err := scopedFn(); err != nil {
			rs.report(e, err)
		}
	}()

	return func() error {
		e.Stop()
		return nil
	}
}

// Untrack runs fn without subscribing the active effect to anything fn reads.
func Untrack[T any](rs *ReactiveSystem, fn func() T) T {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	return fn()
}

func (rs *ReactiveSystem) newEffect(fn ErrFn, opts ...EffectOption) *EffectRunner {
	rs.lastEffectID++
	e := &EffectRunner{
		rs:     rs,
		id:     rs.lastEffectID,
		fn:     fn,
		depSet: mapset.NewThreadUnsafeSet[*dep](),
		seen:   mapset.NewThreadUnsafeSet[*dep](),
	}
	for _, opt := range opts {
		opt(e)
	}

	parent := rs.activeSub
	if parent == nil {
		parent = rs.activeScope
	}
	if parent != nil {
		e.parent = parent
		parent.children = append(parent.children, e)
	}
	if fn != nil {
		rs.effects[e.id] = e
	}
	return e
}

// runEffect makes e the active subscriber for the duration of its function.
// The previous subscriber is restored on the way out, panics included.
func (rs *ReactiveSystem) runEffect(e *EffectRunner) {
	e.stopChildren()

	prevSub := rs.activeSub
	rs.activeSub = e
	e.running = true
	e.seen.Clear()
	e.runs++
	rs.runs++

	defer func() {
		e.running = false
		rs.activeSub = prevSub
		rs.endTracking(e)
	}()

	if err := e.fn(); err != nil {
		rs.report(e, err)
	}
}

// endTracking drops every dependency e did not read during the run that just
// finished. Dependencies that were read again keep their subscription order.
func (rs *ReactiveSystem) endTracking(e *EffectRunner) {
	if rs.accumulate || e.stopped {
		return
	}
	kept := e.deps[:0]
	for _, d := range e.deps {
		if e.seen.Contains(d) {
			kept = append(kept, d)
			continue
		}
		e.depSet.Remove(d)
		d.remove(e)
		rs.dropDep(d)
	}
	clear(e.deps[len(kept):])
	e.deps = kept
}

func (e *EffectRunner) link(d *dep) {
	if e.depSet.Add(d) {
		e.deps = append(e.deps, d)
	}
	e.seen.Add(d)
}

// forget detaches d from e without touching d itself.
func (e *EffectRunner) forget(d *dep) {
	if !e.depSet.Contains(d) {
		return
	}
	e.depSet.Remove(d)
	e.seen.Remove(d)
	if i := slices.Index(e.deps, d); i >= 0 {
		e.deps = slices.Delete(e.deps, i, i+1)
	}
}

// Stop unsubscribes the effect, and every effect created inside it, from all
// of its dependencies. A stopped effect never runs again.
func (e *EffectRunner) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	e.stopChildren()

	for _, d := range e.deps {
		d.remove(e)
		e.rs.dropDep(d)
	}
	e.deps = nil
	e.depSet.Clear()
	e.seen.Clear()
	delete(e.rs.effects, e.id)

	if p := e.parent; p != nil {
		e.parent = nil
		if i := slices.Index(p.children, e); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}

	hooks := e.onStop
	e.onStop = nil
	for _, fn := range hooks {
		fn()
	}
}

// OnStop registers fn to run once the effect stops, whether it is stopped
// directly or along with its parent or scope.
func (e *EffectRunner) OnStop(fn func()) {
	if e.stopped {
		fn()
		return
	}
	e.onStop = append(e.onStop, fn)
}

func (e *EffectRunner) stopChildren() {
	children := e.children
	e.children = nil
	for _, c := range children {
		c.parent = nil
		c.Stop()
	}
}
