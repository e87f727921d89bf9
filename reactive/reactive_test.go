package reactive_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/reactivity/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem(t *testing.T, opts ...reactive.Option) *reactive.ReactiveSystem {
	t.Helper()
	return reactive.CreateReactiveSystem(func(from *reactive.EffectRunner, err error) {
		assert.FailNow(t, err.Error())
	}, opts...)
}

func collectErrors(errs *[]error, opts ...reactive.Option) *reactive.ReactiveSystem {
	return reactive.CreateReactiveSystem(func(from *reactive.EffectRunner, err error) {
		*errs = append(*errs, err)
	}, opts...)
}

func TestSubscribeOnRead(t *testing.T) {
	rs := newSystem(t)
	state := reactive.Observe(rs, map[string]int{"a": 1, "b": 2})

	runs := 0
	reactive.Effect(rs, func() error {
		state.Get("a")
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	state.Set("a", 2)
	assert.Equal(t, 2, runs)

	t.Run("equal write does not trigger", func(t *testing.T) {
		state.Set("a", 2)
		assert.Equal(t, 2, runs)
	})

	t.Run("other key does not trigger", func(t *testing.T) {
		state.Set("b", 5)
		assert.Equal(t, 2, runs)
	})

	t.Run("new key triggers its readers", func(t *testing.T) {
		seen := []int{}
		reactive.Effect(rs, func() error {
			seen = append(seen, state.Get("c"))
			return nil
		})
		state.Set("c", 0)
		assert.Equal(t, []int{0, 0}, seen)
	})
}

func TestTrackOutsideEffectIsNoop(t *testing.T) {
	rs := newSystem(t)
	count := reactive.NewRef(rs, 1)

	assert.Nil(t, rs.Active())
	assert.Equal(t, 1, count.Value())
	assert.Equal(t, 0, rs.Stats().DependencySets)

	count.SetValue(2)
	assert.Equal(t, uint64(0), rs.Stats().Triggers)
}

func TestRepeatedReadsSubscribeOnce(t *testing.T) {
	rs := newSystem(t)
	count := reactive.NewRef(rs, 0)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		count.Value()
		count.Value()
		count.Value()
		return nil
	})

	snap := rs.Snapshot()
	require.Len(t, snap.Targets, 1)
	require.Len(t, snap.Targets[0].Keys, 1)
	assert.Equal(t, reactive.ValueKey, snap.Targets[0].Keys[0].Key)
	assert.Len(t, snap.Targets[0].Keys[0].Effects, 1)

	count.SetValue(1)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, rs.Stats().Subscriptions)
}

func TestTriggerRunsSubscribersInOrder(t *testing.T) {
	rs := newSystem(t)
	a := reactive.NewRef(rs, 0)
	b := reactive.NewRef(rs, 0)

	order := []string{}
	reactive.Effect(rs, func() error {
		order = append(order, "writes b")
		b.SetValue(a.Value() + 1)
		return nil
	})
	reactive.Effect(rs, func() error {
		order = append(order, "reads a")
		a.Value()
		return nil
	})
	reactive.Effect(rs, func() error {
		order = append(order, "reads b")
		b.Value()
		return nil
	})

	order = order[:0]
	a.SetValue(1)

	// the nested trigger on b finishes before a's next subscriber runs
	assert.Equal(t, []string{"writes b", "reads b", "reads a"}, order)
	assert.Equal(t, 2, b.Peek())
}

func TestDependenciesArePrunedBetweenRuns(t *testing.T) {
	rs := newSystem(t)
	useA := reactive.NewRef(rs, true)
	a := reactive.NewRef(rs, 1)
	b := reactive.NewRef(rs, 2)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		if useA.Value() {
			a.Value()
		} else {
			b.Value()
		}
		return nil
	})
	assert.Equal(t, 1, runs)

	b.SetValue(3)
	assert.Equal(t, 1, runs)
	a.SetValue(3)
	assert.Equal(t, 2, runs)

	useA.SetValue(false)
	assert.Equal(t, 3, runs)

	a.SetValue(4)
	assert.Equal(t, 3, runs, "a is no longer read")
	b.SetValue(4)
	assert.Equal(t, 4, runs)

	assert.Equal(t, 2, rs.Stats().DependencySets)
}

func TestAccumulatingDependencies(t *testing.T) {
	rs := newSystem(t, reactive.WithAccumulatingDeps())
	useA := reactive.NewRef(rs, true)
	a := reactive.NewRef(rs, 1)
	b := reactive.NewRef(rs, 2)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		if useA.Value() {
			a.Value()
		} else {
			b.Value()
		}
		return nil
	})

	useA.SetValue(false)
	assert.Equal(t, 2, runs)

	a.SetValue(4)
	assert.Equal(t, 3, runs, "a stays subscribed")
	b.SetValue(4)
	assert.Equal(t, 4, runs)

	assert.Equal(t, 3, rs.Stats().DependencySets)
}

func TestCyclicDependencyIsReported(t *testing.T) {
	var errs []error
	rs := collectErrors(&errs)
	count := reactive.NewRef(rs, 0).Named("count")

	reactive.Effect(rs, func() error {
		count.SetValue(count.Value() + 1)
		return nil
	}, reactive.WithName("increment"))

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], reactive.ErrCyclicDependency)
	assert.Contains(t, errs[0].Error(), `effect "increment"`)
	assert.Contains(t, errs[0].Error(), "count.value")
	assert.Equal(t, 1, count.Peek())

	count.SetValue(5)
	assert.Len(t, errs, 2)
	assert.Equal(t, 6, count.Peek())
}

func TestMaxDepth(t *testing.T) {
	var errs []error
	rs := collectErrors(&errs, reactive.WithMaxDepth(3))

	refs := make([]*reactive.Ref[int], 5)
	for i := range refs {
		refs[i] = reactive.NewRef(rs, 0)
	}
	for i := 0; i < len(refs)-1; i++ {
		src, dst := refs[i], refs[i+1]
		reactive.Effect(rs, func() error {
			dst.SetValue(src.Value() + 1)
			return nil
		})
	}
	require.Empty(t, errs)
	assert.Equal(t, 4, refs[4].Peek())

	refs[0].SetValue(10)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], reactive.ErrMaxDepthExceeded))
	assert.Equal(t, 13, refs[3].Peek())
	assert.Equal(t, 4, refs[4].Peek())
}

func TestTriggerUnknownKey(t *testing.T) {
	rs := newSystem(t)
	target := rs.NewTarget("manual")

	assert.NotPanics(t, func() {
		rs.Trigger(target, "nothing")
		rs.Trigger(target+100, "nothing")
	})
}

func TestManualTrackAndTrigger(t *testing.T) {
	rs := newSystem(t)
	target := rs.NewTarget("manual")

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		rs.Track(target, 42)
		return nil
	})

	rs.Trigger(target, 41)
	assert.Equal(t, 1, runs)
	rs.Trigger(target, 42)
	assert.Equal(t, 2, runs)
}
