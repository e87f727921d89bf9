package reactive

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// dep is the set of effects subscribed to one (target, key) pair. subs keeps
// subscription order, members answers membership.
type dep struct {
	target  TargetID
	key     any
	subs    []*EffectRunner
	members mapset.Set[*EffectRunner]
}

func newDep(target TargetID, key any) *dep {
	return &dep{
		target:  target,
		key:     key,
		members: mapset.NewThreadUnsafeSet[*EffectRunner](),
	}
}

func (d *dep) add(e *EffectRunner) bool {
	if !d.members.Add(e) {
		return false
	}
	d.subs = append(d.subs, e)
	return true
}

func (d *dep) remove(e *EffectRunner) bool {
	if !d.members.Contains(e) {
		return false
	}
	d.members.Remove(e)
	if i := slices.Index(d.subs, e); i >= 0 {
		d.subs = slices.Delete(d.subs, i, i+1)
	}
	return true
}
