package reactive

// TargetID identifies a tracked record inside a ReactiveSystem. IDs are
// assigned at registration, increase monotonically and are never reused.
type TargetID uint64

// EffectID identifies an effect inside a ReactiveSystem.
type EffectID uint64

// ValueKey is the key every Ref and Computed is tracked and triggered on.
const ValueKey = "value"

type ErrFn func() error

type OnErrorFunc func(from *EffectRunner, err error)
