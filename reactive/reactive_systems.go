package reactive

import (
	"fmt"
	"log"
	"reflect"
	"slices"
	"unsafe"
)

const DefaultMaxDepth = 1000

// ReactiveSystem owns the dependency registry and the active effect for one
// reactive graph. It is not safe for concurrent use; goroutines that need
// their own graph should each create a system.
type ReactiveSystem struct {
	activeSub   *EffectRunner
	activeScope *EffectRunner
	pauseStack  []*EffectRunner
	onError     OnErrorFunc

	maxDepth   int
	accumulate bool
	depth      int

	lastTargetID TargetID
	lastEffectID EffectID
	targets      map[TargetID]*targetEntry
	idents       map[identity]TargetID
	effects      map[EffectID]*EffectRunner

	runs     uint64
	triggers uint64
}

type Option func(*ReactiveSystem)

// WithMaxDepth bounds how deep nested triggers may go before the system
// reports ErrMaxDepthExceeded instead of descending further.
func WithMaxDepth(depth int) Option {
	return func(rs *ReactiveSystem) {
		if depth > 0 {
			rs.maxDepth = depth
		}
	}
}

// WithAccumulatingDeps keeps every dependency an effect has ever read instead
// of pruning to the dependencies read during its latest run.
func WithAccumulatingDeps() Option {
	return func(rs *ReactiveSystem) {
		rs.accumulate = true
	}
}

func CreateReactiveSystem(onError OnErrorFunc, opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		onError:  onError,
		maxDepth: DefaultMaxDepth,
		targets:  map[TargetID]*targetEntry{},
		idents:   map[identity]TargetID{},
		effects:  map[EffectID]*EffectRunner{},
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// identity names the caller-owned value behind a target. The type is part of
// it because a struct and its first field share an address.
type identity struct {
	p unsafe.Pointer
	t reflect.Type
}

func identityOf(v reflect.Value) identity {
	return identity{p: v.UnsafePointer(), t: v.Type()}
}

type targetEntry struct {
	id    TargetID
	label string
	ident identity
	deps  map[any]*dep
	keys  []any
}

// NewTarget registers an anonymous target, for integrations that build their
// own accessor types on top of Track and Trigger.
func (rs *ReactiveSystem) NewTarget(label string) TargetID {
	return rs.register(identity{}, label)
}

// register returns the target for ident, creating it on first use. An ident
// without a pointer always creates a fresh target.
func (rs *ReactiveSystem) register(ident identity, label string) TargetID {
	if ident.p != nil {
		if id, ok := rs.idents[ident]; ok {
			return id
		}
	}
	rs.lastTargetID++
	id := rs.lastTargetID
	rs.targets[id] = &targetEntry{
		id:    id,
		label: label,
		ident: ident,
		deps:  map[any]*dep{},
	}
	if ident.p != nil {
		rs.idents[ident] = id
	}
	return id
}

// SetLabel names a target in snapshots and graph output.
func (rs *ReactiveSystem) SetLabel(target TargetID, label string) {
	if t, ok := rs.targets[target]; ok {
		t.label = label
	}
}

// Dispose forgets a target and every dependency set recorded for it. Reads
// and writes through handles of a disposed target are no longer tracked.
func (rs *ReactiveSystem) Dispose(target TargetID) {
	t, ok := rs.targets[target]
	if !ok {
		return
	}
	for _, key := range t.keys {
		d := t.deps[key]
		for _, e := range d.subs {
			e.forget(d)
		}
	}
	if t.ident.p != nil {
		delete(rs.idents, t.ident)
	}
	delete(rs.targets, target)
}

// Track subscribes the active effect to (target, key). It does nothing when
// no effect is running, tracking is paused or the target is unknown.
func (rs *ReactiveSystem) Track(target TargetID, key any) {
	e := rs.activeSub
	if e == nil || e.stopped {
		return
	}
	t, ok := rs.targets[target]
	if !ok {
		return
	}
	d, ok := t.deps[key]
	if !ok {
		d = newDep(target, key)
		t.deps[key] = d
		t.keys = append(t.keys, key)
	}
	d.add(e)
	e.link(d)
}

// Trigger synchronously reruns, in subscription order, every effect
// subscribed to (target, key) when the call starts. Nested triggers caused by
// those runs complete before the next subscriber runs.
func (rs *ReactiveSystem) Trigger(target TargetID, key any) {
	t, ok := rs.targets[target]
	if !ok {
		return
	}
	d, ok := t.deps[key]
	if !ok || len(d.subs) == 0 {
		return
	}
	rs.triggers++

	if rs.depth >= rs.maxDepth {
		rs.report(rs.activeSub, fmt.Errorf("%w: %d at %s", ErrMaxDepthExceeded, rs.maxDepth, rs.describe(target, key)))
		return
	}
	rs.depth++
	defer func() { rs.depth-- }()

	for _, e := range slices.Clone(d.subs) {
		if e.stopped {
			continue
		}
		if e.running {
			rs.report(e, fmt.Errorf("%w: %s reruns itself via %s", ErrCyclicDependency, e, rs.describe(target, key)))
			continue
		}
		rs.runEffect(e)
	}
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	if lastIdx < 0 {
		return
	}
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Active returns the effect that tracked reads are currently attributed to.
func (rs *ReactiveSystem) Active() *EffectRunner {
	return rs.activeSub
}

// dropDep removes an empty dependency set from its target.
func (rs *ReactiveSystem) dropDep(d *dep) {
	if len(d.subs) != 0 {
		return
	}
	t, ok := rs.targets[d.target]
	if !ok || t.deps[d.key] != d {
		return
	}
	delete(t.deps, d.key)
	if i := slices.Index(t.keys, d.key); i >= 0 {
		t.keys = slices.Delete(t.keys, i, i+1)
	}
}

func (rs *ReactiveSystem) report(from *EffectRunner, err error) {
	if rs.onError != nil {
		rs.onError(from, err)
		return
	}
	if from != nil {
		log.Printf("reactive: %s: %v", from, err)
		return
	}
	log.Print(err)
}

func (rs *ReactiveSystem) describe(target TargetID, key any) string {
	if t, ok := rs.targets[target]; ok && t.label != "" {
		return fmt.Sprintf("%s.%v", t.label, key)
	}
	return fmt.Sprintf("target#%d.%v", target, key)
}
