package reactive

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

type EffectInfo struct {
	ID   EffectID
	Name string
	Deps int
	Runs uint64
}

type KeySnapshot struct {
	Key     string
	Effects []EffectID
}

type TargetSnapshot struct {
	ID    TargetID
	Label string
	Keys  []KeySnapshot
}

// Snapshot is a point-in-time copy of the dependency registry. Targets and
// effects are ordered by ID, keys by first subscription.
type Snapshot struct {
	Targets []TargetSnapshot
	Effects []EffectInfo
}

type Stats struct {
	Targets        int
	DependencySets int
	Subscriptions  int
	Effects        int
	Runs           uint64
	Triggers       uint64
}

func (rs *ReactiveSystem) Snapshot() Snapshot {
	var snap Snapshot

	ids := make([]TargetID, 0, len(rs.targets))
	for id := range rs.targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		t := rs.targets[id]
		ts := TargetSnapshot{ID: id, Label: t.label}
		for _, key := range t.keys {
			d := t.deps[key]
			ks := KeySnapshot{Key: fmt.Sprint(key)}
			for _, e := range d.subs {
				ks.Effects = append(ks.Effects, e.id)
			}
			ts.Keys = append(ts.Keys, ks)
		}
		snap.Targets = append(snap.Targets, ts)
	}

	eids := make([]EffectID, 0, len(rs.effects))
	for id := range rs.effects {
		eids = append(eids, id)
	}
	slices.Sort(eids)
	for _, id := range eids {
		e := rs.effects[id]
		snap.Effects = append(snap.Effects, EffectInfo{
			ID:   id,
			Name: e.name,
			Deps: len(e.deps),
			Runs: e.runs,
		})
	}
	return snap
}

func (rs *ReactiveSystem) Stats() Stats {
	s := Stats{
		Targets:  len(rs.targets),
		Effects:  len(rs.effects),
		Runs:     rs.runs,
		Triggers: rs.triggers,
	}
	for _, t := range rs.targets {
		s.DependencySets += len(t.deps)
		for _, d := range t.deps {
			s.Subscriptions += len(d.subs)
		}
	}
	return s
}

// Digest fingerprints the shape of the registry: which effects are
// subscribed to which keys, in which order. Labels and run counts are not
// part of it.
func (rs *ReactiveSystem) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeID := func(id uint64) {
		binary.LittleEndian.PutUint64(buf[:], id)
		h.Write(buf[:])
	}
	for _, t := range rs.Snapshot().Targets {
		writeID(uint64(t.ID))
		for _, k := range t.Keys {
			h.WriteString(k.Key)
			for _, e := range k.Effects {
				writeID(uint64(e))
			}
		}
	}
	return h.Sum64()
}
